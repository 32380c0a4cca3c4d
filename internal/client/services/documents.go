package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/auth"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/provider"
)

// Project is one editor workspace owned by a user.
type Project struct {
	ID        string    `json:"$id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"$createdAt"`
	UpdatedAt time.Time `json:"$updatedAt"`
}

// CodeFile is one source file inside a project. Content is the full file
// body; the editor replaces it wholesale on save.
type CodeFile struct {
	ID        string    `json:"$id"`
	ProjectID string    `json:"projectId"`
	Name      string    `json:"name"`
	Language  string    `json:"language"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"$updatedAt"`
}

// DocumentService is the editor-facing view of the projects and files
// collections.
type DocumentService interface {
	ListProjects(ctx context.Context, ownerID string) ([]*Project, error)
	CreateProject(ctx context.Context, ownerID, name, language string) (*Project, error)
	DeleteProject(ctx context.Context, projectID string) error

	ListFiles(ctx context.Context, projectID string) ([]*CodeFile, error)
	GetFile(ctx context.Context, fileID string) (*CodeFile, error)
	CreateFile(ctx context.Context, projectID, name, language, content string) (*CodeFile, error)
	SaveFile(ctx context.Context, fileID, content string) (*CodeFile, error)
}

type documentService struct {
	store       provider.DocumentStore
	databaseID  string
	projectsCol string
	filesCol    string
}

// NewDocumentService binds the service to the projects and files collections.
func NewDocumentService(store provider.DocumentStore, databaseID, projectsCollectionID, filesCollectionID string) DocumentService {
	return &documentService{
		store:       store,
		databaseID:  databaseID,
		projectsCol: projectsCollectionID,
		filesCol:    filesCollectionID,
	}
}

func decodeDoc[T any](raw provider.RawDocument) (*T, error) {
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return out, nil
}

func decodeDocs[T any](list *provider.DocumentList) ([]*T, error) {
	out := make([]*T, 0, len(list.Documents))
	for _, raw := range list.Documents {
		item, err := decodeDoc[T](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *documentService) ListProjects(ctx context.Context, ownerID string) ([]*Project, error) {
	if ownerID == "" {
		return nil, auth.NewError(auth.KindMissingFields, "Owner id is required")
	}
	list, err := s.store.ListDocuments(ctx, s.databaseID, s.projectsCol,
		[]string{provider.QueryEqual("ownerId", ownerID), provider.QueryOrderDesc("$updatedAt")})
	if err != nil {
		return nil, err
	}
	return decodeDocs[Project](list)
}

func (s *documentService) CreateProject(ctx context.Context, ownerID, name, language string) (*Project, error) {
	name = strings.TrimSpace(name)
	if ownerID == "" || name == "" {
		return nil, auth.NewError(auth.KindMissingFields, "Owner id and project name are required")
	}
	data := map[string]string{"ownerId": ownerID, "name": name, "language": language}
	raw, err := s.store.CreateDocument(ctx, s.databaseID, s.projectsCol, provider.NewUniqueID(), data)
	if err != nil {
		return nil, err
	}
	return decodeDoc[Project](raw)
}

func (s *documentService) DeleteProject(ctx context.Context, projectID string) error {
	if projectID == "" {
		return auth.NewError(auth.KindMissingFields, "Project id is required")
	}
	// Files belonging to the project stay behind; cascade deletes are a
	// server-side rule the client does not attempt to emulate.
	return s.store.DeleteDocument(ctx, s.databaseID, s.projectsCol, projectID)
}

func (s *documentService) ListFiles(ctx context.Context, projectID string) ([]*CodeFile, error) {
	if projectID == "" {
		return nil, auth.NewError(auth.KindMissingFields, "Project id is required")
	}
	list, err := s.store.ListDocuments(ctx, s.databaseID, s.filesCol,
		[]string{provider.QueryEqual("projectId", projectID)})
	if err != nil {
		return nil, err
	}
	return decodeDocs[CodeFile](list)
}

func (s *documentService) GetFile(ctx context.Context, fileID string) (*CodeFile, error) {
	if fileID == "" {
		return nil, auth.NewError(auth.KindMissingFields, "File id is required")
	}
	raw, err := s.store.GetDocument(ctx, s.databaseID, s.filesCol, fileID)
	if err != nil {
		return nil, err
	}
	return decodeDoc[CodeFile](raw)
}

func (s *documentService) CreateFile(ctx context.Context, projectID, name, language, content string) (*CodeFile, error) {
	name = strings.TrimSpace(name)
	if projectID == "" || name == "" {
		return nil, auth.NewError(auth.KindMissingFields, "Project id and file name are required")
	}
	data := map[string]string{"projectId": projectID, "name": name, "language": language, "content": content}
	raw, err := s.store.CreateDocument(ctx, s.databaseID, s.filesCol, provider.NewUniqueID(), data)
	if err != nil {
		return nil, err
	}
	return decodeDoc[CodeFile](raw)
}

func (s *documentService) SaveFile(ctx context.Context, fileID, content string) (*CodeFile, error) {
	if fileID == "" {
		return nil, auth.NewError(auth.KindMissingFields, "File id is required")
	}
	raw, err := s.store.UpdateDocument(ctx, s.databaseID, s.filesCol, fileID, map[string]string{"content": content})
	if err != nil {
		return nil, err
	}
	return decodeDoc[CodeFile](raw)
}
