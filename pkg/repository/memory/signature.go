package memory

import (
	"context"
	"sync"
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type signatureRepository struct {
	mu         sync.RWMutex
	signatures map[string]*model.Signature // signatureID -> signature
}

func newSignatureRepository() *signatureRepository {
	return &signatureRepository{
		signatures: make(map[string]*model.Signature),
	}
}

// copySignature creates a deep copy of a signature
func copySignature(s *model.Signature) *model.Signature {
	copied := *s
	if s.ConsentAt != nil {
		consentAt := *s.ConsentAt
		copied.ConsentAt = &consentAt
	}
	if s.SignedAt != nil {
		signedAt := *s.SignedAt
		copied.SignedAt = &signedAt
	}
	return &copied
}

func (r *signatureRepository) Create(ctx context.Context, signature *model.Signature) (*model.Signature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copySignature(signature)
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.signatures[created.ID] = created
	return copySignature(created), nil
}

func (r *signatureRepository) Get(ctx context.Context, projectID, id string) (*model.Signature, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	signature, exists := r.signatures[id]
	if !exists || signature.ProjectID != projectID {
		return nil, goerr.Wrap(ErrNotFound, "signature not found", goerr.V("id", id))
	}

	return copySignature(signature), nil
}

func (r *signatureRepository) GetByID(ctx context.Context, id string) (*model.Signature, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	signature, exists := r.signatures[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "signature not found", goerr.V("id", id))
	}

	return copySignature(signature), nil
}

func (r *signatureRepository) ListByProject(ctx context.Context, projectID string) ([]*model.Signature, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	signatures := make([]*model.Signature, 0)
	for _, signature := range r.signatures {
		if signature.ProjectID == projectID {
			signatures = append(signatures, copySignature(signature))
		}
	}

	return signatures, nil
}

func (r *signatureRepository) Update(ctx context.Context, signature *model.Signature) (*model.Signature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.signatures[signature.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "signature not found", goerr.V("id", signature.ID))
	}

	updated := copySignature(signature)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.signatures[updated.ID] = updated
	return copySignature(updated), nil
}
