package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/akwaba/ussdflow/pkg/domain"
)

// ErrSplitCursor reports an out-of-range pagination move. The trigger
// eligibility checks in processResponse make it unreachable from subscriber
// input; hitting it means the stored split state is corrupt.
var ErrSplitCursor = errors.New("pagination cursor out of range")

// renderSplit moves the pagination cursor by delta and replies with the
// cached chunk. Current menu and history stay as they are.
func (t *turn) renderSplit(ctx context.Context, delta int) (*domain.Reply, error) {
	sp := t.state.Split
	if sp == nil {
		return nil, fmt.Errorf("menu %q is not split: %w", t.state.CurrentMenuID, ErrSplitCursor)
	}

	idx := sp.Index + delta
	if idx < 0 || idx >= len(sp.Chunks) {
		return nil, fmt.Errorf("page %d of %d: %w", idx+1, len(sp.Chunks), ErrSplitCursor)
	}

	sp.Index = idx
	sp.Start = idx == 0
	sp.End = idx == len(sp.Chunks)-1

	if err := t.persist(ctx); err != nil {
		return nil, err
	}
	return domain.NewAsk(sp.Chunks[idx], t.req.SessionID), nil
}
