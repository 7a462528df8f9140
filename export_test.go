package symeq

const AbsRewriteFeedback = absRewriteFeedback

var (
	SplitExpressionSet = splitExpressionSet
	SubstituteAliases  = substituteAliases
)
