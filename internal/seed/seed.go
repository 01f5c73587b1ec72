// Package seed loads a JSON resource catalog and imports it through the
// resource service, so seeded rows get the same normalisation as admin
// writes.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"mindwell/internal/microservices/http-api/dto"
	"mindwell/internal/microservices/http-api/service"

	"github.com/go-playground/validator/v10"
)

// Catalog is the seed file layout.
type Catalog struct {
	Resources []dto.CreateResourceDTO `json:"resources"`
}

type Result struct {
	Imported int
	Skipped  int
}

// validate reads the same "binding" tags gin uses for request bodies.
var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	return v
}()

func ReadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func Read(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode seed JSON: %w", err)
	}
	return &c, nil
}

// Import creates every valid entry. Invalid or rejected entries are logged
// and skipped; only a storage failure aborts the run.
func Import(ctx context.Context, svc service.ResourceService, c *Catalog, logger *slog.Logger) (Result, error) {
	var res Result
	for i, in := range c.Resources {
		if err := validate.Struct(in); err != nil {
			logger.Warn("seed_entry_invalid", "index", i, "title", in.Title, "error", err)
			res.Skipped++
			continue
		}
		m := in.ToModel()
		if err := svc.Create(ctx, &m); err != nil {
			var svcErr *service.Error
			if errors.As(err, &svcErr) {
				logger.Warn("seed_entry_rejected", "index", i, "title", in.Title, "error", svcErr.Message)
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("import entry %d (%s): %w", i, in.Title, err)
		}
		res.Imported++
	}
	logger.Info("seed_import_finished", "imported", res.Imported, "skipped", res.Skipped)
	return res, nil
}
