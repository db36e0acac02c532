package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kolah/oasforge/internal/model"
)

func newDocWithOp(t *testing.T) (*Engine, *model.Document) {
	t.Helper()
	eng := Default()
	doc := model.NewDocument()
	doc, err := eng.CreatePath(doc, "/users")
	require.NoError(t, err)
	doc, err = eng.AddOperation(doc, "/users", "get")
	require.NoError(t, err)
	return eng, doc
}

func getOp(t *testing.T, doc *model.Document, path, method string) *model.OperationNode {
	t.Helper()
	item, ok := doc.Paths.Get(path)
	require.True(t, ok)
	m, ok := model.NormalizeMethod(method)
	require.True(t, ok)
	op, ok := item.Operations.Get(m)
	require.True(t, ok)
	return op
}

func TestAddOperationDefaults(t *testing.T) {
	_, doc := newDocWithOp(t)

	op := getOp(t, doc, "/users", "get")
	require.Equal(t, "New GET endpoint", op.Summary)
	require.Equal(t, 1, op.Responses.Len())
	resp, ok := op.Responses.Get("200")
	require.True(t, ok)
	require.Equal(t, "OK", resp.Description)
	require.Nil(t, resp.Schema)
	require.True(t, op.Exposure.IsEmpty())
}

func TestAddOperationCaseInsensitiveDuplicate(t *testing.T) {
	eng, doc := newDocWithOp(t)

	_, err := eng.AddOperation(doc, "/users", "GET")
	require.ErrorIs(t, err, ErrDuplicateName)

	_, err = eng.AddOperation(doc, "/users", "connect")
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = eng.AddOperation(doc, "/missing", "get")
	require.ErrorIs(t, err, ErrNotFound)

	doc, err = eng.AddOperation(doc, "/users", "Post")
	require.NoError(t, err)
	item, _ := doc.Paths.Get("/users")
	_, ok := item.Operations.Get(model.MethodPost)
	require.True(t, ok)
}

func TestDeleteOperation(t *testing.T) {
	eng, doc := newDocWithOp(t)

	doc, err := eng.DeleteOperation(doc, "/users", "GET")
	require.NoError(t, err)
	item, _ := doc.Paths.Get("/users")
	require.Equal(t, 0, item.Operations.Len())

	same, err := eng.DeleteOperation(doc, "/users", "get")
	require.NoError(t, err)
	require.Same(t, doc, same)
}

func TestUpdateOperationFieldsIsPartial(t *testing.T) {
	eng, doc := newDocWithOp(t)

	summary := "List users"
	doc, err := eng.UpdateOperationFields(doc, "/users", "get", FieldPatch{Summary: &summary})
	require.NoError(t, err)

	id := "listUsers"
	doc, err = eng.UpdateOperationFields(doc, "/users", "get", FieldPatch{OperationID: &id})
	require.NoError(t, err)

	op := getOp(t, doc, "/users", "get")
	require.Equal(t, "List users", op.Summary)
	require.Equal(t, "listUsers", op.OperationID)
	require.Empty(t, op.Description)
}

func TestSetOperationRequestSchema(t *testing.T) {
	eng, doc := newDocWithOp(t)

	doc, err := eng.SetOperationRequestSchema(doc, "/users", "get", "#/components/schemas/User")
	require.NoError(t, err)
	op := getOp(t, doc, "/users", "get")
	require.Equal(t, &model.Reference{Target: "User"}, op.Request)

	// Empty ref removes the request body entirely.
	doc, err = eng.SetOperationRequestSchema(doc, "/users", "get", "")
	require.NoError(t, err)
	op = getOp(t, doc, "/users", "get")
	require.Nil(t, op.Request)
}

func TestSetOperationResponseSchemaPreservesDescription(t *testing.T) {
	eng, doc := newDocWithOp(t)

	// Give the 200 response a custom description first.
	op := getOp(t, doc, "/users", "get")
	resp, _ := op.Responses.Get("200")
	resp.Description = "A list of users"

	doc, err := eng.SetOperationResponseSchema(doc, "/users", "get", "200", "User")
	require.NoError(t, err)
	op = getOp(t, doc, "/users", "get")
	resp, _ = op.Responses.Get("200")
	require.Equal(t, &model.Reference{Target: "User"}, resp.Schema)
	require.Equal(t, "A list of users", resp.Description)

	// Clearing the body keeps the description exactly as it was.
	doc, err = eng.SetOperationResponseSchema(doc, "/users", "get", "200", "")
	require.NoError(t, err)
	op = getOp(t, doc, "/users", "get")
	resp, _ = op.Responses.Get("200")
	require.Nil(t, resp.Schema)
	require.Equal(t, "A list of users", resp.Description)
}

func TestSetOperationResponseSchemaCreatesMissingStatus(t *testing.T) {
	eng, doc := newDocWithOp(t)

	doc, err := eng.SetOperationResponseSchema(doc, "/users", "get", "404", "Error")
	require.NoError(t, err)
	op := getOp(t, doc, "/users", "get")
	resp, ok := op.Responses.Get("404")
	require.True(t, ok)
	require.Equal(t, "OK", resp.Description)
	require.Equal(t, &model.Reference{Target: "Error"}, resp.Schema)

	// Clearing an absent status is a no-op.
	same, err := eng.SetOperationResponseSchema(doc, "/users", "get", "500", "")
	require.NoError(t, err)
	require.Same(t, doc, same)
}

func TestTags(t *testing.T) {
	eng, doc := newDocWithOp(t)

	doc, err := eng.AddTag(doc, "/users", "get", "users")
	require.NoError(t, err)
	doc, err = eng.AddTag(doc, "/users", "get", "users")
	require.NoError(t, err)
	op := getOp(t, doc, "/users", "get")
	// Duplicates are kept by default.
	require.Equal(t, []string{"users", "users"}, op.Tags)

	// Blank tags are ignored.
	same, err := eng.AddTag(doc, "/users", "get", "  ")
	require.NoError(t, err)
	require.Same(t, doc, same)

	// Delete removes every exact match.
	doc, err = eng.DeleteTag(doc, "/users", "get", "users")
	require.NoError(t, err)
	op = getOp(t, doc, "/users", "get")
	require.Empty(t, op.Tags)
}

func TestTagsDeduped(t *testing.T) {
	eng := New(Options{DedupeTags: true})
	doc := model.NewDocument()
	doc, err := eng.CreatePath(doc, "/users")
	require.NoError(t, err)
	doc, err = eng.AddOperation(doc, "/users", "get")
	require.NoError(t, err)

	doc, err = eng.AddTag(doc, "/users", "get", "users")
	require.NoError(t, err)
	same, err := eng.AddTag(doc, "/users", "get", "users")
	require.NoError(t, err)
	require.Same(t, doc, same)
	op := getOp(t, doc, "/users", "get")
	require.Equal(t, []string{"users"}, op.Tags)
}

func TestSetOperationExposure(t *testing.T) {
	eng, doc := newDocWithOp(t)

	doc, err := eng.SetOperationExposure(doc, "/users", "get", model.NewChannelSet(model.ChannelOpenAPI))
	require.NoError(t, err)
	op := getOp(t, doc, "/users", "get")
	require.Equal(t, "openApi", op.Exposure.String())

	_, err = eng.SetOperationExposure(doc, "/users", "put", nil)
	require.ErrorIs(t, err, ErrNotFound)
}
