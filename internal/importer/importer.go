// Package importer handles bulk product imports: parsing the batch file,
// stamping every record with the importing user, validating the whole batch
// client-side, and submitting it in one request.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"catalogctl/internal/metrics"
	"catalogctl/internal/models"
	"catalogctl/internal/notify"
	"catalogctl/internal/validate"
)

// BulkAPI is the slice of the REST client the importer needs.
type BulkAPI interface {
	ImportProducts(ctx context.Context, batch []models.ProductImport) error
}

// Importer runs bulk import batches.
type Importer struct {
	api      BulkAPI
	notifier notify.Notifier
	logger   *slog.Logger
}

// New creates an importer over the given API.
func New(api BulkAPI, notifier notify.Notifier, logger *slog.Logger) *Importer {
	return &Importer{api: api, notifier: notifier, logger: logger}
}

// Parse decodes a JSON array of import records.
func Parse(r io.Reader) ([]models.ProductImport, error) {
	var batch []models.ProductImport
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&batch); err != nil {
		return nil, fmt.Errorf("parsing import batch: %w", err)
	}
	return batch, nil
}

// Stamp sets the importing user's id as creator on every record and every
// nested payload that will be created with it. Linked ids are left alone;
// only records the import itself creates carry the stamp.
func Stamp(batch []models.ProductImport, userID int64) {
	for i := range batch {
		stampProduct(&batch[i], userID)
	}
}

func stampProduct(p *models.ProductImport, userID int64) {
	p.CreatedBy = userID
	if p.Owner != nil {
		stampPerson(p.Owner, userID)
	}
	if p.Manufacturer != nil {
		stampOrganization(p.Manufacturer, userID)
	}
}

func stampPerson(w *models.PersonWrite, userID int64) {
	w.CreatedBy = userID
	if w.CreateLocation != nil {
		w.CreateLocation.CreatedBy = userID
	}
}

func stampOrganization(w *models.OrganizationWrite, userID int64) {
	w.CreatedBy = userID
	if w.CreateOfficialAddress != nil {
		stampAddress(w.CreateOfficialAddress, userID)
	}
	if w.CreatePostalAddress != nil {
		stampAddress(w.CreatePostalAddress, userID)
	}
}

func stampAddress(w *models.AddressWrite, userID int64) {
	w.CreatedBy = userID
	if w.CreateTown != nil {
		w.CreateTown.CreatedBy = userID
	}
}

// ValidateBatch checks every record and returns all violations, each
// prefixed with the record's position. Any violation means the batch must
// not be submitted.
func ValidateBatch(batch []models.ProductImport) validate.Violations {
	var all validate.Violations
	for i, p := range batch {
		for _, vio := range validate.ImportProduct(p) {
			vio.Field = fmt.Sprintf("products[%d].%s", i, vio.Field)
			all = append(all, vio)
		}
	}
	return all
}

// Import stamps, validates, and submits one batch. A single invalid record
// aborts the whole batch before anything reaches the backend; the backend
// in turn commits the batch atomically on its side.
func (im *Importer) Import(ctx context.Context, batch []models.ProductImport, userID int64) error {
	metrics.Inc(metrics.ImportBatches)

	if len(batch) == 0 {
		im.notifier.Warn("import batch is empty")
		return nil
	}

	Stamp(batch, userID)

	if vio := ValidateBatch(batch); len(vio) > 0 {
		metrics.Inc(metrics.ImportAborted)
		im.notifier.Error("import aborted, batch has invalid records: " + vio.Error())
		return vio
	}

	if err := im.api.ImportProducts(ctx, batch); err != nil {
		im.logger.Warn("bulk import failed", "records", len(batch), "error", err)
		return err
	}

	im.logger.Info("bulk import committed", "records", len(batch))
	im.notifier.Success(fmt.Sprintf("imported %d products", len(batch)))
	return nil
}
