package supportnode

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
	toolx "github.com/tanpawarit/Chative-Support-Agent/agent/tool"
)

// Dispatch extracts parameters and invokes the tools the intent calls for.
// Catalog failures are returned; missing parameters only skip tools.
func Dispatch(ctx context.Context, in RequestState, catalog contractx.CatalogSource) (RequestState, error) {
	params := ExtractParams(in.Text)

	switch in.Intent {
	case contractx.IntentProductAssist:
		return dispatchProductAssist(ctx, in, params, catalog)
	case contractx.IntentOrderHelp:
		return dispatchOrderHelp(ctx, in, params, catalog)
	default:
		return in, nil
	}
}

func dispatchProductAssist(
	ctx context.Context,
	in RequestState,
	params Params,
	catalog contractx.CatalogSource,
) (RequestState, error) {
	logger := zerolog.Ctx(ctx)

	products, err := catalog.Products(ctx)
	if err != nil {
		return in, err
	}
	in.Products = products

	found := toolx.ProductSearch(products, params.Query, params.PriceMax, nil)
	in = in.withTool(toolx.ToolProductSearch)
	in.Results.ProductSearch = found
	for _, p := range found {
		in = in.withEvidence(contractx.ProductEvidenceFrom(p))
	}
	logger.Debug().
		Str("query", params.Query).
		Int("price_max", params.PriceMax).
		Int("results", len(found)).
		Msg("product_search")

	if params.WantsSize {
		rec := toolx.SizeRecommender(strings.ToLower(in.Text))
		in = in.withTool(toolx.ToolSizeRecommender)
		in.Results.Size = &rec
		logger.Debug().Str("size", rec.RecommendedSize).Msg("size_recommender")
	}

	if params.Zip != "" {
		eta := toolx.ETA(params.Zip)
		in = in.withTool(toolx.ToolETA)
		in.Results.ETA = &eta
		logger.Debug().Str("zip", params.Zip).Str("region", eta.Region).Msg("eta")
	}

	return in, nil
}

func dispatchOrderHelp(
	ctx context.Context,
	in RequestState,
	params Params,
	catalog contractx.CatalogSource,
) (RequestState, error) {
	logger := zerolog.Ctx(ctx)

	if params.OrderID == "" || params.Email == "" {
		logger.Debug().
			Bool("has_order_id", params.OrderID != "").
			Bool("has_email", params.Email != "").
			Msg("order lookup skipped, missing identifiers")
		return in, nil
	}

	orders, err := catalog.Orders(ctx)
	if err != nil {
		return in, err
	}

	order, ok := toolx.OrderLookup(orders, params.OrderID, params.Email)
	in = in.withTool(toolx.ToolOrderLookup)
	if !ok {
		logger.Debug().Str("order_id", params.OrderID).Msg("order_lookup: no match")
		return in, nil
	}
	in.Results.Order = &order
	in = in.withEvidence(contractx.OrderEvidenceFrom(order))

	products, err := catalog.Products(ctx)
	if err != nil {
		return in, err
	}
	in.Products = products

	if strings.Contains(strings.ToLower(in.Text), "cancel") {
		result, err := toolx.OrderCancel(orders, order.OrderID, in.Now)
		if err != nil {
			return in, err
		}
		in = in.withTool(toolx.ToolOrderCancel)
		in.Results.Cancel = &result
		logger.Debug().
			Str("order_id", order.OrderID).
			Str("state", string(result.State)).
			Float64("elapsed_minutes", result.ElapsedMinutes).
			Msg("order_cancel")
	}

	return in, nil
}
