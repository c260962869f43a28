package model

import (
	"time"

	"github.com/google/uuid"
)

type DocumentModel struct {
	DocumentID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:document_id" json:"document_id"`
	DocumentChurchID    uuid.UUID  `gorm:"type:uuid;not null;index;column:document_church_id" json:"document_church_id"`
	DocumentTitle       string     `gorm:"type:varchar(200);not null;column:document_title" json:"document_title"`
	DocumentFileName    string     `gorm:"type:varchar(255);not null;column:document_file_name" json:"document_file_name"`
	DocumentContentType string     `gorm:"type:varchar(120);column:document_content_type" json:"document_content_type"`
	DocumentSizeBytes   int64      `gorm:"not null;default:0;column:document_size_bytes" json:"document_size_bytes"`
	DocumentObjectKey   string     `gorm:"type:text;not null;column:document_object_key" json:"-"`
	DocumentURL         string     `gorm:"type:text;not null;column:document_url" json:"document_url"`
	DocumentUploadedBy  *uuid.UUID `gorm:"type:uuid;column:document_uploaded_by" json:"document_uploaded_by,omitempty"`
	DocumentCreatedAt   time.Time  `gorm:"column:document_created_at;autoCreateTime" json:"document_created_at"`
}

func (DocumentModel) TableName() string { return "pastor_documents" }
