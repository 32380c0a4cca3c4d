package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/auth"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/provider"
)

func TestListProjects_DecodesDocuments(t *testing.T) {
	d := &fakeDocStore{ListRet: &provider.DocumentList{
		Total: 2,
		Documents: []provider.RawDocument{
			provider.RawDocument(`{"$id":"p1","ownerId":"u1","name":"sandbox","language":"go"}`),
			provider.RawDocument(`{"$id":"p2","ownerId":"u1","name":"scratch","language":"js"}`),
		},
	}}
	svc := NewDocumentService(d, "db", "projects", "files")

	projects, err := svc.ListProjects(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, "p1", projects[0].ID)
	require.Equal(t, "sandbox", projects[0].Name)
}

func TestListProjects_RequiresOwner(t *testing.T) {
	svc := NewDocumentService(&fakeDocStore{}, "db", "projects", "files")
	_, err := svc.ListProjects(context.Background(), "")
	require.True(t, auth.IsKind(err, auth.KindMissingFields))
}

func TestCreateProject(t *testing.T) {
	d := &fakeDocStore{CreateRet: provider.RawDocument(`{"$id":"p1","ownerId":"u1","name":"sandbox","language":"go"}`)}
	svc := NewDocumentService(d, "db", "projects", "files")

	proj, err := svc.CreateProject(context.Background(), "u1", "  sandbox ", "go")
	require.NoError(t, err)
	require.Equal(t, "p1", proj.ID)
	require.Equal(t, []map[string]string{{"ownerId": "u1", "name": "sandbox", "language": "go"}}, d.Created)
}

func TestGetFile_And_SaveFile(t *testing.T) {
	d := &fakeDocStore{
		GetRet:    provider.RawDocument(`{"$id":"f1","projectId":"p1","name":"main.go","content":"package main"}`),
		UpdateRet: provider.RawDocument(`{"$id":"f1","projectId":"p1","name":"main.go","content":"package updated"}`),
	}
	svc := NewDocumentService(d, "db", "projects", "files")

	file, err := svc.GetFile(context.Background(), "f1")
	require.NoError(t, err)
	require.Equal(t, "package main", file.Content)

	file, err = svc.SaveFile(context.Background(), "f1", "package updated")
	require.NoError(t, err)
	require.Equal(t, "package updated", file.Content)
	require.Equal(t, []string{"GetDocument", "UpdateDocument"}, d.Calls)
}

func TestSaveFile_RequiresID(t *testing.T) {
	svc := NewDocumentService(&fakeDocStore{}, "db", "projects", "files")
	_, err := svc.SaveFile(context.Background(), "", "content")
	require.True(t, auth.IsKind(err, auth.KindMissingFields))
}

func TestUsernameDirectory_DeleteIgnoresMissingRecord(t *testing.T) {
	d := &fakeDocStore{DeleteErr: &provider.Error{Code: 404, Type: provider.TypeDocumentNotFound}}
	dir := NewUsernameDirectory(d, "db", "usernames")
	require.NoError(t, dir.Delete(context.Background(), "u1"))
}

func TestUsernameDirectory_Lookup(t *testing.T) {
	d := &fakeDocStore{ListRet: &provider.DocumentList{
		Total:     1,
		Documents: []provider.RawDocument{provider.RawDocument(`{"$id":"u1","userId":"u1","username":"alice"}`)},
	}}
	dir := NewUsernameDirectory(d, "db", "usernames")

	rec, err := dir.Lookup(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", rec.Username)

	d = &fakeDocStore{}
	dir = NewUsernameDirectory(d, "db", "usernames")
	rec, err = dir.Lookup(context.Background(), "ghost")
	require.NoError(t, err)
	require.Nil(t, rec)
}
