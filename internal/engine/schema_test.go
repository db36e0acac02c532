package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kolah/oasforge/internal/model"
)

func TestCreateSchema(t *testing.T) {
	eng := Default()
	doc := model.NewDocument()

	doc, err := eng.CreateSchema(doc, "User")
	require.NoError(t, err)
	node, ok := doc.Schemas.Get("User")
	require.True(t, ok)
	obj, ok := node.Variant.(model.Object)
	require.True(t, ok)
	require.Equal(t, 0, obj.Properties.Len())

	// Second create with the same name fails and changes nothing.
	same, err := eng.CreateSchema(doc, "User")
	require.ErrorIs(t, err, ErrDuplicateName)
	require.Same(t, doc, same)
	require.Equal(t, 1, doc.Schemas.Len())

	_, err = eng.CreateSchema(doc, "   ")
	require.ErrorIs(t, err, ErrInvalidName)
}

func TestDeleteSchemaReportsDanglingRefs(t *testing.T) {
	eng := Default()
	doc := model.NewDocument()

	doc, err := eng.CreateSchema(doc, "User")
	require.NoError(t, err)
	doc, err = eng.CreateSchema(doc, "Account")
	require.NoError(t, err)
	doc, err = eng.AddProperty(doc, "Account", "owner")
	require.NoError(t, err)
	doc, err = eng.SetPropertyType(doc, "Account", "owner", model.Reference{Target: "User"})
	require.NoError(t, err)

	doc, refs, err := eng.DeleteSchema(doc, "User")
	require.NoError(t, err)
	require.Equal(t, 1, refs)
	_, ok := doc.Schemas.Get("User")
	require.False(t, ok)

	// The reference itself is untouched.
	node, _ := doc.Schemas.Get("Account")
	owner, _ := node.Variant.(model.Object).Properties.Get("owner")
	require.Equal(t, model.Reference{Target: "User"}, owner.Variant)

	// Deleting an absent schema is a no-op.
	same, refs, err := eng.DeleteSchema(doc, "User")
	require.NoError(t, err)
	require.Zero(t, refs)
	require.Same(t, doc, same)
}

func TestSetSchemaTypeRestoresStashedProperties(t *testing.T) {
	eng := Default()
	doc := model.NewDocument()

	doc, err := eng.CreateSchema(doc, "User")
	require.NoError(t, err)
	doc, err = eng.AddProperty(doc, "User", "name")
	require.NoError(t, err)
	doc, err = eng.AddProperty(doc, "User", "age")
	require.NoError(t, err)

	// Object -> primitive drops the properties from the node.
	doc, err = eng.SetSchemaType(doc, "User", model.Primitive{Kind: model.KindString})
	require.NoError(t, err)
	node, _ := doc.Schemas.Get("User")
	require.Equal(t, model.Primitive{Kind: model.KindString}, node.Variant)

	// Switching back to object without touching it restores them.
	doc, err = eng.SetSchemaType(doc, "User", model.NewObject())
	require.NoError(t, err)
	node, _ = doc.Schemas.Get("User")
	obj := node.Variant.(model.Object)
	require.Equal(t, 2, obj.Properties.Len())
	_, ok := obj.Properties.Get("name")
	require.True(t, ok)
	_, ok = obj.Properties.Get("age")
	require.True(t, ok)

	// The stash survives several intermediate variants.
	doc, err = eng.SetSchemaType(doc, "User", model.Primitive{Kind: model.KindNumber})
	require.NoError(t, err)
	doc, err = eng.SetSchemaType(doc, "User", model.Primitive{Kind: model.KindBoolean})
	require.NoError(t, err)
	doc, err = eng.SetSchemaType(doc, "User", model.NewObject())
	require.NoError(t, err)
	node, _ = doc.Schemas.Get("User")
	require.Equal(t, 2, node.Variant.(model.Object).Properties.Len())
}

func TestSetSchemaTypeArrayOfObjectCreatesItemsSchema(t *testing.T) {
	eng := Default()
	doc := model.NewDocument()

	doc, err := eng.CreateSchema(doc, "UserList")
	require.NoError(t, err)

	arrayOfObject := model.Array{Items: &model.SchemaNode{Variant: model.NewObject()}}
	doc, err = eng.SetSchemaType(doc, "UserList", arrayOfObject)
	require.NoError(t, err)

	node, _ := doc.Schemas.Get("UserList")
	arr := node.Variant.(model.Array)
	require.Equal(t, model.Reference{Target: "UserList_items"}, arr.Items.Variant)
	items, ok := doc.Schemas.Get("UserList_items")
	require.True(t, ok)
	require.IsType(t, model.Object{}, items.Variant)

	// Repeating the same edit reuses the schema instead of duplicating it.
	doc, err = eng.SetSchemaType(doc, "UserList", model.Array{Items: &model.SchemaNode{Variant: model.NewObject()}})
	require.NoError(t, err)
	require.Equal(t, 2, doc.Schemas.Len())

	// Populated items schema survives the repeat.
	doc, err = eng.AddProperty(doc, "UserList_items", "id")
	require.NoError(t, err)
	doc, err = eng.SetSchemaType(doc, "UserList", model.Array{Items: &model.SchemaNode{Variant: model.NewObject()}})
	require.NoError(t, err)
	items, _ = doc.Schemas.Get("UserList_items")
	require.Equal(t, 1, items.Variant.(model.Object).Properties.Len())
}

func TestSetSchemaExposure(t *testing.T) {
	eng := Default()
	doc := model.NewDocument()

	doc, err := eng.CreateSchema(doc, "User")
	require.NoError(t, err)

	doc, err = eng.SetSchemaExposure(doc, "User", model.NewChannelSet(model.ChannelInternet, model.ChannelExtranet))
	require.NoError(t, err)
	node, _ := doc.Schemas.Get("User")
	require.True(t, node.Exposure.Has(model.ChannelInternet))
	require.True(t, node.Exposure.Has(model.ChannelExtranet))

	// Empty set clears the attribute.
	doc, err = eng.SetSchemaExposure(doc, "User", nil)
	require.NoError(t, err)
	node, _ = doc.Schemas.Get("User")
	require.True(t, node.Exposure.IsEmpty())

	_, err = eng.SetSchemaExposure(doc, "Nope", nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddProperty(t *testing.T) {
	eng := Default()
	doc := model.NewDocument()

	doc, err := eng.CreateSchema(doc, "User")
	require.NoError(t, err)

	doc, err = eng.AddProperty(doc, "User", "name")
	require.NoError(t, err)
	node, _ := doc.Schemas.Get("User")
	prop, ok := node.Variant.(model.Object).Properties.Get("name")
	require.True(t, ok)
	require.Equal(t, model.Primitive{Kind: model.KindString}, prop.Variant)

	_, err = eng.AddProperty(doc, "User", "name")
	require.ErrorIs(t, err, ErrDuplicateName)

	_, err = eng.AddProperty(doc, "User", "")
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = eng.AddProperty(doc, "Nope", "name")
	require.ErrorIs(t, err, ErrNotFound)

	doc, err = eng.SetSchemaType(doc, "User", model.Primitive{Kind: model.KindString})
	require.NoError(t, err)
	_, err = eng.AddProperty(doc, "User", "other")
	require.ErrorIs(t, err, ErrNotObject)
}

func TestDeleteProperty(t *testing.T) {
	eng := Default()
	doc := model.NewDocument()

	doc, err := eng.CreateSchema(doc, "User")
	require.NoError(t, err)
	doc, err = eng.AddProperty(doc, "User", "name")
	require.NoError(t, err)

	doc, err = eng.DeleteProperty(doc, "User", "name")
	require.NoError(t, err)
	node, _ := doc.Schemas.Get("User")
	require.Equal(t, 0, node.Variant.(model.Object).Properties.Len())

	// Absent property and absent schema are both no-ops.
	same, err := eng.DeleteProperty(doc, "User", "name")
	require.NoError(t, err)
	require.Same(t, doc, same)
	same, err = eng.DeleteProperty(doc, "Nope", "name")
	require.NoError(t, err)
	require.Same(t, doc, same)
}

func TestSetPropertyTypeArrayAutoItems(t *testing.T) {
	eng := Default()
	doc := model.NewDocument()

	doc, err := eng.CreateSchema(doc, "User")
	require.NoError(t, err)
	doc, err = eng.AddProperty(doc, "User", "pets")
	require.NoError(t, err)

	doc, err = eng.SetPropertyType(doc, "User", "pets", model.Array{Items: &model.SchemaNode{Variant: model.NewObject()}})
	require.NoError(t, err)

	items, ok := doc.Schemas.Get("User_pets_items")
	require.True(t, ok)
	require.IsType(t, model.Object{}, items.Variant)

	node, _ := doc.Schemas.Get("User")
	pets, _ := node.Variant.(model.Object).Properties.Get("pets")
	require.Equal(t, model.Reference{Target: "User_pets_items"}, pets.Variant.(model.Array).Items.Variant)
}

func TestSetPropertyExposure(t *testing.T) {
	eng := Default()
	doc := model.NewDocument()

	doc, err := eng.CreateSchema(doc, "User")
	require.NoError(t, err)
	doc, err = eng.AddProperty(doc, "User", "ssn")
	require.NoError(t, err)

	doc, err = eng.SetPropertyExposure(doc, "User", "ssn", model.NewChannelSet(model.ChannelExtranet))
	require.NoError(t, err)
	node, _ := doc.Schemas.Get("User")
	prop, _ := node.Variant.(model.Object).Properties.Get("ssn")
	require.Equal(t, "extranet", prop.Exposure.String())

	_, err = eng.SetPropertyExposure(doc, "User", "nope", nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMutationsDoNotTouchInputDocument(t *testing.T) {
	eng := Default()
	doc := model.NewDocument()
	doc, err := eng.CreateSchema(doc, "User")
	require.NoError(t, err)

	before := doc.Clone()
	next, err := eng.AddProperty(doc, "User", "name")
	require.NoError(t, err)
	require.NotSame(t, doc, next)
	require.True(t, doc.Equal(before))
}
