package supportnode

import (
	"context"

	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
	intentx "github.com/tanpawarit/Chative-Support-Agent/agent/intent"
)

func Classify(ctx context.Context, in RequestState, classifier contractx.Classifier) RequestState {
	in.Intent = intentx.Resolve(ctx, classifier, in.Text)
	return in
}
