package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/edinet-research-agent/models"
	"github.com/dtnitsch/edinet-research-agent/pkg/cache"
	"github.com/dtnitsch/edinet-research-agent/pkg/registry"
)

// AcquireNode resolves a filing id to a local PDF, downloading from the
// registry only on a cache miss. The same type serves the prior-period
// branch via the Prior flag.
type AcquireNode struct {
	Registry registry.Client
	Index    *cache.Index
	Logger   *slog.Logger
	Prior    bool
}

func (n *AcquireNode) Name() string {
	if n.Prior {
		return NodeAcquirePrior
	}
	return NodeAcquire
}

func (n *AcquireNode) Execute(ctx context.Context, state State) (Patch, error) {
	docID := state.DocID
	filing := state.Filing
	if n.Prior {
		docID = state.PriorDocID
		filing = state.PriorFiling
	}
	if docID == "" {
		return Patch{}, fmt.Errorf("no filing id to acquire")
	}

	entry, err := n.Index.FindByID(docID)
	if err != nil {
		return Patch{}, fmt.Errorf("cache lookup failed: %w", err)
	}
	if entry != nil {
		return n.patch(entry.FilePath), nil
	}

	data, err := n.Registry.Fetch(ctx, docID, registry.KindPDF)
	if err != nil {
		return Patch{}, fmt.Errorf("failed to download %s: %w", docID, err)
	}

	// Without registry metadata the file still lands under the cache
	// convention, just with placeholder issuer segments.
	if filing == nil {
		filing = &models.Filing{DocID: docID}
	}
	path, err := cache.Write(n.Index.Dir(), *filing, registry.KindPDF.Ext(), data)
	if err != nil {
		return Patch{}, err
	}
	n.Logger.Info("filing downloaded", "doc_id", docID, "path", path, "bytes", len(data))
	return n.patch(path), nil
}

func (n *AcquireNode) patch(path string) Patch {
	if n.Prior {
		return Patch{PriorFilePath: path}
	}
	return Patch{FilePath: path}
}
