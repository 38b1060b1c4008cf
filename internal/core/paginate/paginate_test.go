package paginate

import (
	"cmp"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id   string
	kind string
}

func newTestEngine(max int) *Engine[item] {
	return NewEngine(max,
		Attribute[item]{Name: "id", Column: "item_id", Compare: func(a, b item) int { return cmp.Compare(a.id, b.id) }},
		Attribute[item]{Name: "kind", Column: "kind", Compare: func(a, b item) int { return cmp.Compare(a.kind, b.kind) }},
	)
}

func makeItems(n int) []item {
	out := make([]item, 0, n)
	for i := n; i >= 1; i-- {
		out = append(out, item{id: fmt.Sprintf("ID%03d", i), kind: "k"})
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestResolve_Limit(t *testing.T) {
	e := newTestEngine(100)

	tests := []struct {
		name  string
		limit *int
		want  int
	}{
		{name: "absent uses ceiling", limit: nil, want: 100},
		{name: "zero uses ceiling", limit: intPtr(0), want: 100},
		{name: "negative uses ceiling", limit: intPtr(-3), want: 100},
		{name: "within range", limit: intPtr(7), want: 7},
		{name: "exactly ceiling", limit: intPtr(100), want: 100},
		{name: "above ceiling clamps", limit: intPtr(180), want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := e.Resolve("", tt.limit, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Limit)
		})
	}
}

func TestResolve_Ordering(t *testing.T) {
	e := newTestEngine(10)

	p, err := e.Resolve("", nil, -5)
	require.NoError(t, err)
	assert.Equal(t, "id", p.OrderBy)
	assert.False(t, p.Desc)
	assert.Equal(t, 0, p.Offset)

	p, err = e.Resolve("-kind", nil, 3)
	require.NoError(t, err)
	assert.Equal(t, "kind", p.OrderBy)
	assert.Equal(t, "kind", p.Column)
	assert.True(t, p.Desc)
	assert.Equal(t, 3, p.Offset)
	assert.Equal(t, "kind DESC, item_id ASC", p.OrderClause())

	_, err = e.Resolve("invalid", nil, 0)
	var oe *OrderingError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "invalid", oe.Attr)
	assert.Equal(t, "Ordering with 'invalid' is disallowed or the attribute does not exist on the model", err.Error())

	// 大小写敏感，去掉前缀后再校验
	_, err = e.Resolve("-ID", nil, 0)
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "ID", oe.Attr)
}

func TestApply(t *testing.T) {
	e := newTestEngine(150)
	items := makeItems(200)

	p, err := e.Resolve("", intPtr(180), 0)
	require.NoError(t, err)
	page, total := e.Apply(items, p)
	assert.Equal(t, int64(200), total)
	require.Len(t, page, 150)
	assert.Equal(t, "ID001", page[0].id)
	assert.Equal(t, "ID150", page[149].id)

	p, err = e.Resolve("-id", intPtr(2), 1)
	require.NoError(t, err)
	page, _ = e.Apply(items, p)
	assert.Equal(t, []item{{id: "ID199", kind: "k"}, {id: "ID198", kind: "k"}}, page)

	// offset 超出范围返回空页，总数不变
	p, err = e.Resolve("", nil, 500)
	require.NoError(t, err)
	page, total = e.Apply(items, p)
	assert.Empty(t, page)
	assert.Equal(t, int64(200), total)

	// 入参保持原顺序
	assert.Equal(t, "ID200", items[0].id)
}

func TestApply_TieBreakByDefault(t *testing.T) {
	e := newTestEngine(10)
	items := []item{{id: "c", kind: "x"}, {id: "a", kind: "x"}, {id: "b", kind: "w"}}

	p, err := e.Resolve("-kind", nil, 0)
	require.NoError(t, err)
	page, _ := e.Apply(items, p)
	assert.Equal(t, []string{"a", "c", "b"}, []string{page[0].id, page[1].id, page[2].id})
	assert.Equal(t, "kind DESC, item_id ASC", p.OrderClause())

	p, err = e.Resolve("id", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "item_id ASC", p.OrderClause())
}
