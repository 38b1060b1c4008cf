package connection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conn-hub/internal/model"
)

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func secretPtr(s string) *model.Secret {
	v := model.Secret(s)
	return &v
}

func existingConnection() *model.Connection {
	return &model.Connection{
		BaseModel:   model.BaseModel{ID: 7},
		ConnID:      "test-connection-id",
		ConnType:    "test_type",
		Description: strPtr("keep me"),
		Host:        strPtr("db.internal"),
		Password:    secretPtr("old"),
		Extra:       strPtr(`{"key": "var"}`),
	}
}

func TestCatalog(t *testing.T) {
	assert.Equal(t, FieldIdentity, Classify("connection_id"))
	assert.Equal(t, FieldMutable, Classify("port"))
	assert.Equal(t, FieldUnknown, Classify("conn_id"))
	assert.Equal(t, FieldUnknown, Classify("Port"))
	assert.Equal(t, "identity", FieldIdentity.String())

	assert.False(t, MaskSelectable("connection_id"))
	assert.True(t, MaskSelectable("password"))
	assert.True(t, BodyAccepted("connection_id"))
	assert.False(t, BodyAccepted("extras"))
	assert.False(t, BodyAccepted("_password"))

	fields := MutableFields()
	assert.Len(t, fields, 8)
	assert.NotContains(t, fields, "connection_id")
	fields[0] = "mutated"
	assert.Equal(t, "conn_type", MutableFields()[0])
}

func TestParseMask(t *testing.T) {
	assert.Equal(t, []string{"ports", "login"}, ParseMask("ports, login"))
	assert.Equal(t, []string{"port", "", ""}, ParseMask(" port ,, "))
	assert.Equal(t, []string{"port", "login", "host"}, ParseMask("port", "login, host"))
	assert.Equal(t, []string{""}, ParseMask(""))
	assert.Nil(t, ParseMask())
}

func TestResolve_MaskCopiesOnlySelectedFields(t *testing.T) {
	existing := existingConnection()
	payload := &model.Connection{
		ConnID:   "test-connection-id",
		ConnType: "test_type_2",
		Extra:    strPtr(`{'key': 'var'}`),
		Login:    strPtr("login"),
		Port:     intPtr(80),
	}

	merged, err := Resolve(existing, payload, []string{"port", "login"})
	require.NoError(t, err)

	assert.Equal(t, "test_type", merged.ConnType)
	assert.Equal(t, `{"key": "var"}`, *merged.Extra)
	assert.Equal(t, "keep me", *merged.Description)
	assert.Equal(t, "db.internal", *merged.Host)
	assert.Equal(t, "old", merged.Password.Plain())
	assert.Equal(t, "login", *merged.Login)
	assert.Equal(t, 80, *merged.Port)
	assert.Equal(t, int64(7), merged.ID)

	// 入参不被修改
	assert.Nil(t, existing.Port)
	*merged.Host = "changed"
	assert.Equal(t, "db.internal", *existing.Host)
}

func TestResolve_MaskFieldAbsentFromPayloadClears(t *testing.T) {
	merged, err := Resolve(existingConnection(), &model.Connection{}, []string{"host"})
	require.NoError(t, err)
	assert.Nil(t, merged.Host)
	assert.Equal(t, "keep me", *merged.Description)
}

func TestResolve_NoMaskReplacesWholeRecord(t *testing.T) {
	payload := &model.Connection{
		ConnID:   "test-connection-id",
		ConnType: "mysql",
		Port:     intPtr(3306),
	}

	for _, mask := range [][]string{nil, {}} {
		merged, err := Resolve(existingConnection(), payload, mask)
		require.NoError(t, err)

		assert.Equal(t, "test-connection-id", merged.ConnID)
		assert.Equal(t, "mysql", merged.ConnType)
		assert.Equal(t, 3306, *merged.Port)
		assert.Nil(t, merged.Description)
		assert.Nil(t, merged.Host)
		assert.Nil(t, merged.Password)
		assert.Nil(t, merged.Extra)
	}
}

func TestResolve_PayloadWithoutIdentity(t *testing.T) {
	merged, err := Resolve(existingConnection(), &model.Connection{Extra: strPtr("{'key': 'var'}")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "test-connection-id", merged.ConnID)
	assert.Equal(t, "{'key': 'var'}", *merged.Extra)
	assert.Equal(t, "", merged.ConnType)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload *model.Connection
		mask    []string
		wantErr string
	}{
		{
			name:    "unknown field reported before later valid ones",
			payload: &model.Connection{ConnID: "test-connection-id"},
			mask:    []string{"ports", "login"},
			wantErr: "'ports' is unknown or cannot be updated.",
		},
		{
			name:    "legacy identity name is unknown",
			payload: &model.Connection{ConnID: "test-connection-id"},
			mask:    []string{"port", "login", "conn_id"},
			wantErr: "'conn_id' is unknown or cannot be updated.",
		},
		{
			name:    "identity field is immutable",
			payload: &model.Connection{ConnID: "test-connection-id"},
			mask:    []string{"port", "login", "connection_id"},
			wantErr: "'connection_id' is unknown or cannot be updated.",
		},
		{
			name:    "empty names only",
			payload: &model.Connection{Port: intPtr(5)},
			mask:    []string{"", ""},
			wantErr: "'' is unknown or cannot be updated.",
		},
		{
			name:    "empty name after valid ones",
			payload: &model.Connection{Port: intPtr(5)},
			mask:    []string{"port", ""},
			wantErr: "'' is unknown or cannot be updated.",
		},
		{
			name:    "identity mismatch without mask",
			payload: &model.Connection{ConnID: "test-connection"},
			wantErr: "The connection_id cannot be updated.",
		},
		{
			name:    "identity mismatch wins over bad mask",
			payload: &model.Connection{ConnID: "test-connection"},
			mask:    []string{"ports"},
			wantErr: "The connection_id cannot be updated.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(existingConnection(), tt.payload, tt.mask)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}

	_, err := Resolve(existingConnection(), &model.Connection{ConnID: "other"}, nil)
	assert.ErrorIs(t, err, ErrIdentityMismatch)

	_, err = Resolve(existingConnection(), &model.Connection{}, []string{"nope"})
	var fe *UnknownOrImmutableFieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "nope", fe.Field)
}

func TestNewPaginator(t *testing.T) {
	p := NewPaginator(100)
	items := []*model.Connection{
		{ConnID: "b", Port: intPtr(2)},
		{ConnID: "a"},
		{ConnID: "c", Port: intPtr(1)},
	}

	page, err := p.Resolve("-connection_id", nil, 0)
	require.NoError(t, err)
	got, total := p.Apply(items, page)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"c", "b", "a"}, []string{got[0].ConnID, got[1].ConnID, got[2].ConnID})

	page, err = p.Resolve("port", nil, 0)
	require.NoError(t, err)
	got, _ = p.Apply(items, page)
	assert.Equal(t, []string{"a", "c", "b"}, []string{got[0].ConnID, got[1].ConnID, got[2].ConnID})
	assert.Equal(t, "port ASC, conn_id ASC", page.OrderClause())

	_, err = p.Resolve("password", nil, 0)
	assert.Error(t, err)
}

func TestNewPaginator_OrderByID(t *testing.T) {
	p := NewPaginator(100)
	items := []*model.Connection{
		{BaseModel: model.BaseModel{ID: 2}, ConnID: "a"},
		{BaseModel: model.BaseModel{ID: 3}, ConnID: "b"},
		{BaseModel: model.BaseModel{ID: 1}, ConnID: "c"},
	}

	page, err := p.Resolve("-id", nil, 0)
	require.NoError(t, err)
	got, _ := p.Apply(items, page)
	assert.Equal(t, []string{"b", "a", "c"}, []string{got[0].ConnID, got[1].ConnID, got[2].ConnID})
	assert.Equal(t, "id DESC, conn_id ASC", page.OrderClause())
}
