package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Mathew-2006/school-website/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDocumentNotFound is returned by operations that require the document to
// already exist, such as a partial update.
var ErrDocumentNotFound = fmt.Errorf("document not found")

// comparison operators accepted by QueryCollection
var queryOperators = map[string]string{
	"==": "=",
	"!=": "<>",
	"<":  "<",
	"<=": "<=",
	">":  ">",
	">=": ">=",
}

// DocumentStore provides generic CRUD over named document collections.
// Every operation is a single statement; there are no transactions across
// calls and writes are last-write-wins.
type DocumentStore struct {
	db *gorm.DB
}

func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// GetDocument returns the document payload with its id attached, or nil if
// no document exists at that id.
func (s *DocumentStore) GetDocument(ctx context.Context, collection, docID string) (map[string]interface{}, error) {
	var doc models.Document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, docID).
		First(&doc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		slog.Error("Failed to get document", "error", err, "collection", collection, "doc_id", docID)
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return attachID(doc), nil
}

// SetDocument overwrites the full document at docID, creating it if absent,
// and returns the id.
func (s *DocumentStore) SetDocument(ctx context.Context, collection, docID string, data map[string]interface{}) (string, error) {
	doc := models.Document{
		Collection: collection,
		DocID:      docID,
		Data:       models.JSONMap(data),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&doc).Error
	if err != nil {
		slog.Error("Failed to set document", "error", err, "collection", collection, "doc_id", docID)
		return "", fmt.Errorf("failed to set document: %w", err)
	}
	slog.Info("Document set", "collection", collection, "doc_id", docID)
	return docID, nil
}

// UpdateDocument merges the given fields into an existing document and
// returns the id. It fails with ErrDocumentNotFound when nothing is stored
// at docID.
func (s *DocumentStore) UpdateDocument(ctx context.Context, collection, docID string, partial map[string]interface{}) (string, error) {
	var doc models.Document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, docID).
		First(&doc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", ErrDocumentNotFound
		}
		slog.Error("Failed to load document for update", "error", err, "collection", collection, "doc_id", docID)
		return "", fmt.Errorf("failed to load document: %w", err)
	}

	merged := MergeDocument(doc.Data, partial)

	err = s.db.WithContext(ctx).
		Model(&models.Document{}).
		Where("collection = ? AND doc_id = ?", collection, docID).
		Update("data", models.JSONMap(merged)).Error
	if err != nil {
		slog.Error("Failed to update document", "error", err, "collection", collection, "doc_id", docID)
		return "", fmt.Errorf("failed to update document: %w", err)
	}

	slog.Info("Document updated", "collection", collection, "doc_id", docID)
	return docID, nil
}

// GetCollection returns all documents in the collection with ids attached.
// Order is unspecified.
func (s *DocumentStore) GetCollection(ctx context.Context, collection string) ([]map[string]interface{}, error) {
	var docs []models.Document
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Find(&docs).Error
	if err != nil {
		slog.Error("Failed to get collection", "error", err, "collection", collection)
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return attachIDs(docs), nil
}

// AddDocument stores the payload under a newly assigned id and returns it.
func (s *DocumentStore) AddDocument(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	doc := models.Document{
		Collection: collection,
		DocID:      uuid.New().String(),
		Data:       models.JSONMap(data),
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		slog.Error("Failed to add document", "error", err, "collection", collection)
		return "", fmt.Errorf("failed to add document: %w", err)
	}
	slog.Info("Document added", "collection", collection, "doc_id", doc.DocID)
	return doc.DocID, nil
}

// DeleteDocument removes the document and returns the id whether or not a
// document existed.
func (s *DocumentStore) DeleteDocument(ctx context.Context, collection, docID string) (string, error) {
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, docID).
		Delete(&models.Document{}).Error
	if err != nil {
		slog.Error("Failed to delete document", "error", err, "collection", collection, "doc_id", docID)
		return "", fmt.Errorf("failed to delete document: %w", err)
	}
	slog.Info("Document deleted", "collection", collection, "doc_id", docID)
	return docID, nil
}

// QueryCollection returns the documents whose payload field satisfies a
// single comparison predicate. Numeric values compare numerically, anything
// else as text. Compound filters and pagination are not supported.
func (s *DocumentStore) QueryCollection(ctx context.Context, collection, field, operator string, value interface{}) ([]map[string]interface{}, error) {
	sqlOp, err := QueryOperator(operator)
	if err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Where("collection = ?", collection)
	if isNumeric(value) {
		query = query.Where(fmt.Sprintf("(data->>?)::numeric %s ?", sqlOp), field, value)
	} else {
		query = query.Where(fmt.Sprintf("data->>? %s ?", sqlOp), field, value)
	}

	var docs []models.Document
	if err := query.Find(&docs).Error; err != nil {
		slog.Error("Failed to query collection", "error", err, "collection", collection, "field", field)
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}
	return attachIDs(docs), nil
}

// QueryOperator maps a predicate operator to its SQL form, rejecting
// anything outside the whitelist.
func QueryOperator(operator string) (string, error) {
	sqlOp, ok := queryOperators[operator]
	if !ok {
		return "", fmt.Errorf("unsupported query operator %q", operator)
	}
	return sqlOp, nil
}

// MergeDocument overlays partial onto base without mutating either map.
func MergeDocument(base map[string]interface{}, partial map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(base)+len(partial))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range partial {
		merged[k] = v
	}
	return merged
}

func attachID(doc models.Document) map[string]interface{} {
	out := make(map[string]interface{}, len(doc.Data)+1)
	for k, v := range doc.Data {
		out[k] = v
	}
	out["id"] = doc.DocID
	return out
}

func attachIDs(docs []models.Document) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		out = append(out, attachID(doc))
	}
	return out
}

func isNumeric(value interface{}) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}
