package dereferencer

// Reserved control keywords. All of them are consumed during a pass; only a
// $ref deliberately left in place survives into the output.
const (
	KeyRef                      = "$ref"
	KeyRefIgnore                = "$refIgnore"
	KeyRefInline                = "$refInline"
	KeyRefDeep                  = "$refDeep"
	KeyRefLocalize              = "$refLocalize"
	KeyRefIncludes              = "$refIncludes"
	KeyRefExcludes              = "$refExcludes"
	KeyRefArrayProcessing       = "$refArrayProcessing"
	KeyRefArrayRemovePartial    = "$refArrayRemovePartialMatch"
	KeyRefSetMerge              = "$refSetMerge"
	KeyRefAliases               = "$refAliases"
	KeyRefGlobalInline          = "$refGlobalInline"
	KeyRefGlobalIncludedPostfix = "$refGlobalIncludedRefPostfix"
)

// ExternalLibKey is the provenance attribute written into objects promoted
// into the /definitions, /parameters, or /components sections of the root.
const ExternalLibKey = "x-external-lib"

// mergeDirectives are the keywords read by the merge engine. They are removed
// from a node whenever its reference is settled without a merge.
var mergeDirectives = []string{KeyRefIncludes, KeyRefExcludes, KeyRefArrayProcessing}
