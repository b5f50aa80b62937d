package tool

const (
	ToolProductSearch   = "product_search"
	ToolSizeRecommender = "size_recommender"
	ToolETA             = "eta"
	ToolOrderLookup     = "order_lookup"
	ToolOrderCancel     = "order_cancel"
)

// MaxSearchResults caps product_search output.
const MaxSearchResults = 2
