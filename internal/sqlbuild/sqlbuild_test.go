package sqlbuild

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func render(stmt Statement) []byte {
	return []byte(fmt.Sprintf("%s\n%v", stmt.SQL, stmt.Args))
}

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestUpdate_OnlyPresentFields(t *testing.T) {
	var f Fields
	OptionalText(&f, "name", ptr("New Name"))
	Optional[string](&f, "description", nil)
	Optional(&f, "public", ptr(true))
	Optional[float64](&f, "latitude", nil)

	stmt, err := Update("boxes", &f, "id = $1", "box-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "public"}, f.Columns())
	assert.NotContains(t, stmt.SQL, "description")
	assert.NotContains(t, stmt.SQL, "latitude")
	newGolden(t).Assert(t, "update_sparse", render(stmt))
}

func TestUpdate_PlaceholdersContinueAfterWhereArgs(t *testing.T) {
	var f Fields
	f.Set("title", "Temp")
	f.Set("unit", "°C")

	stmt, err := Update("sensors", &f, "id = $1 AND box_id = $2", "s1", "box-1")
	require.NoError(t, err)

	assert.Equal(t, "UPDATE sensors SET title = $3, unit = $4 WHERE id = $1 AND box_id = $2", stmt.SQL)
	assert.Equal(t, []any{"s1", "box-1", "Temp", "°C"}, stmt.Args)
}

func TestUpdate_Empty(t *testing.T) {
	var f Fields
	Optional[string](&f, "name", nil)
	OptionalText(&f, "title", ptr("   "))

	_, err := Update("boxes", &f, "id = $1", "box-1")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Update("boxes", nil, "id = $1", "box-1")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestUpdate_OrderFollowsCaller(t *testing.T) {
	var a, b Fields
	a.Set("b", 2)
	a.Set("a", 1)
	b.Set("a", 1)
	b.Set("b", 2)

	sa, err := Update("t", &a, "id = $1", 9)
	require.NoError(t, err)
	sb, err := Update("t", &b, "id = $1", 9)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE t SET b = $2, a = $3 WHERE id = $1", sa.SQL)
	assert.Equal(t, "UPDATE t SET a = $2, b = $3 WHERE id = $1", sb.SQL)
}

func TestInsert_WithReturning(t *testing.T) {
	var f Fields
	f.Set("id", "s9")
	f.Set("box_id", "box-1")
	f.Set("title", "PM10")
	Optional[string](&f, "icon", nil)

	stmt, err := Insert("sensors", &f, "id", "updated_at")
	require.NoError(t, err)

	newGolden(t).Assert(t, "insert_returning", render(stmt))
}

func TestInsert_Empty(t *testing.T) {
	_, err := Insert("sensors", &Fields{})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestAssignments_DoesNotAliasValues(t *testing.T) {
	var f Fields
	f.Set("name", "x")

	_, values := f.Assignments(0)
	values[0] = "mutated"

	_, again := f.Assignments(0)
	assert.Equal(t, []any{"x"}, again)
}
