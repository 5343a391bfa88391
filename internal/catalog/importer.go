package catalog

import (
	"context"
	"fmt"

	"github.com/vytor/nahuatl/internal/logger"
	"github.com/vytor/nahuatl/internal/repository"
)

// Import validates doc and replaces the stored catalog with it.
func Import(ctx context.Context, repo repository.CatalogRepository, doc *Document) error {
	log := logger.FromContext(ctx).WithPrefix("catalog")

	if err := Validate(doc); err != nil {
		log.Error("catalog validation failed: %v", err)
		return fmt.Errorf("invalid catalog: %w", err)
	}
	if err := repo.ReplaceContent(ctx, doc.Content()); err != nil {
		return fmt.Errorf("import catalog: %w", err)
	}
	log.Info("catalog imported: units=%d, words=%d", len(doc.Units), len(doc.Words))
	return nil
}
