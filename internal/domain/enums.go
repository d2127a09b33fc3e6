package domain

// Regime identifies one of the two income-tax computation rule sets.
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// Regimes lists both regimes in comparison order.
var Regimes = []Regime{RegimeOld, RegimeNew}

// Valid reports whether the regime is a recognized value.
func (r Regime) Valid() bool {
	return r == RegimeOld || r == RegimeNew
}

// Other returns the alternate regime.
func (r Regime) Other() Regime {
	if r == RegimeOld {
		return RegimeNew
	}
	return RegimeOld
}

// UserRole defines the role hierarchy.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// DocumentCategory classifies uploaded tax documents.
type DocumentCategory string

const (
	DocumentCategoryForm16          DocumentCategory = "form16"
	DocumentCategoryInvestmentProof DocumentCategory = "investment_proof"
	DocumentCategoryPAN             DocumentCategory = "pan"
	DocumentCategoryOther           DocumentCategory = "other"
)

// ValidDocumentCategories maps recognized categories for input validation.
var ValidDocumentCategories = map[DocumentCategory]bool{
	DocumentCategoryForm16:          true,
	DocumentCategoryInvestmentProof: true,
	DocumentCategoryPAN:             true,
	DocumentCategoryOther:           true,
}

// FileType represents the allowed file types for document upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// FileStatus represents the lifecycle of an uploaded document file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)

// UpdateStatus represents the publication state of a regulatory update.
type UpdateStatus string

const (
	UpdateStatusDraft     UpdateStatus = "draft"
	UpdateStatusPublished UpdateStatus = "published"
)

// UpdateCategory classifies regulatory updates for feed filtering.
type UpdateCategory string

const (
	UpdateCategorySlabs      UpdateCategory = "slabs"
	UpdateCategoryDeductions UpdateCategory = "deductions"
	UpdateCategoryCompliance UpdateCategory = "compliance"
	UpdateCategoryDeadlines  UpdateCategory = "deadlines"
	UpdateCategoryGeneral    UpdateCategory = "general"
)

// ValidUpdateCategories maps recognized update categories.
var ValidUpdateCategories = map[UpdateCategory]bool{
	UpdateCategorySlabs:      true,
	UpdateCategoryDeductions: true,
	UpdateCategoryCompliance: true,
	UpdateCategoryDeadlines:  true,
	UpdateCategoryGeneral:    true,
}

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)
