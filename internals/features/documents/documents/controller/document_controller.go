package controller

import (
	"errors"
	"log"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/documents/documents/model"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
	helperOSS "ecclesia_backend/internals/helpers/oss"
)

type DocumentController struct {
	DB    *gorm.DB
	Store helperOSS.BlobStore
}

func NewDocumentController(db *gorm.DB, store helperOSS.BlobStore) *DocumentController {
	return &DocumentController{DB: db, Store: store}
}

// 🟢 GET /api/a/documents?q=
func (ctl *DocumentController) List(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)
	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.DocumentModel{}).
		Where("document_church_id = ?", churchID)
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("document_title ILIKE ? OR document_file_name ILIKE ?", "%"+q+"%", "%"+q+"%")
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return err
	}
	var rows []model.DocumentModel
	if err := tx.Order("document_created_at DESC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "Documents loaded", rows, paging.Pagination(total))
}

// 🟢 POST /api/a/documents (multipart: file, title)
func (ctl *DocumentController) Upload(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	fh, err := helperOSS.GetFormFile(c, "file", "document")
	if err != nil {
		return err
	}
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "file is required")
	}
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		title = strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	}
	if len(title) > 200 {
		title = title[:200]
	}

	url, key, ct, err := ctl.Store.UploadFile(c.UserContext(), helperOSS.ChurchDir(churchID, "documents"), fh)
	if err != nil {
		return err
	}
	doc := model.DocumentModel{
		DocumentChurchID:    churchID,
		DocumentTitle:       title,
		DocumentFileName:    filepath.Base(fh.Filename),
		DocumentContentType: ct,
		DocumentSizeBytes:   fh.Size,
		DocumentObjectKey:   key,
		DocumentURL:         url,
	}
	if uid, err := helperAuth.GetUserID(c); err == nil {
		doc.DocumentUploadedBy = &uid
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&doc).Error; err != nil {
		if delErr := ctl.Store.DeleteObject(c.UserContext(), key); delErr != nil {
			log.Printf("[WARN] orphan document object %s: %v", key, delErr)
		}
		return err
	}
	return helper.JsonCreated(c, "Document uploaded", doc)
}

// 🟢 DELETE /api/a/documents/:id
func (ctl *DocumentController) Delete(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var doc model.DocumentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&doc, "document_id = ? AND document_church_id = ?", id, churchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Document not found")
		}
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(&doc).Error; err != nil {
		return err
	}
	if err := ctl.Store.DeleteObject(c.UserContext(), doc.DocumentObjectKey); err != nil {
		log.Printf("[WARN] delete document object %s: %v", doc.DocumentObjectKey, err)
	}
	return helper.JsonDeleted(c, "Document deleted", fiber.Map{"document_id": doc.DocumentID})
}
