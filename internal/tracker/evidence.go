package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

// EvidenceService manages standalone evidence attachments. Evidence created
// through a check-in goes through KeyResults.RecordCheckIn instead.
type EvidenceService struct {
	store store.Store
}

// AttachEvidenceInput carries the fields of a standalone evidence
// attachment.
type AttachEvidenceInput struct {
	Ref   model.EntityRef    `json:"ref"`
	Title string             `json:"title"`
	URL   string             `json:"url"`
	Type  model.EvidenceType `json:"type"`
}

func (in AttachEvidenceInput) validate() error {
	var f fieldErrors
	f.required("title", in.Title)
	f.required("url", in.URL)
	validRef(&f, "ref", in.Ref)
	if !in.Type.Valid() {
		f.add("type", "invalid", fmt.Sprintf("unknown evidence type %q", in.Type))
	}
	return f.err()
}

// Attach records evidence against an entity. The target is not checked for
// existence: attachment is polymorphic and refs are allowed to dangle.
func (s *EvidenceService) Attach(ctx context.Context, rctx *model.RequestContext, in AttachEvidenceInput) (model.Evidence, error) {
	if err := in.validate(); err != nil {
		return model.Evidence{}, err
	}

	ev := model.Evidence{
		ID:        uuid.New().String(),
		TenantID:  rctx.TenantID,
		Ref:       in.Ref,
		Title:     in.Title,
		URL:       in.URL,
		Type:      in.Type,
		CreatedBy: rctx.SubjectID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateEvidence(ctx, ev); err != nil {
		return model.Evidence{}, err
	}
	return ev, nil
}

// Get retrieves an evidence row.
func (s *EvidenceService) Get(ctx context.Context, rctx *model.RequestContext, id string) (model.Evidence, error) {
	return s.store.GetEvidence(ctx, rctx.TenantID, id)
}

// List returns evidence, optionally narrowed to one entity or check-in.
func (s *EvidenceService) List(ctx context.Context, rctx *model.RequestContext, ref model.EntityRef, checkInID string) ([]model.Evidence, error) {
	return s.store.ListEvidence(ctx, rctx.TenantID, ref, checkInID)
}

// Delete removes an evidence row.
func (s *EvidenceService) Delete(ctx context.Context, rctx *model.RequestContext, id string) error {
	return s.store.DeleteEvidence(ctx, rctx.TenantID, id)
}
