package expr

import (
	"math/big"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

type order struct{}

func candidate() EntityPath[order] {
	return NewPath[order](nil, "this")
}

func TestBooleanExpression(t *testing.T) {
	e := NewBooleanExpression(candidate(), "active")
	tests := []struct {
		name     string
		input    P
		expected string
	}{
		{"Path", e, `this.active`},
		{"Eq", e.Eq(true), `this.active == true`},
		{"Ne", e.Ne(false), `this.active != false`},
		{"Negate", e.Negate(), `!(this.active)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.String())
		})
	}
}

func TestByteExpression(t *testing.T) {
	e := NewByteExpression(candidate(), "flag")
	tests := []struct {
		name     string
		input    P
		expected string
	}{
		{"Eq", e.Eq(127), `this.flag == 127`},
		{"Ne", e.Ne(0), `this.flag != 0`},
		{"Gt", e.Gt(16), `this.flag > 16`},
		{"Gte", e.Gte(16), `this.flag >= 16`},
		{"Lt", e.Lt(32), `this.flag < 32`},
		{"Lte", e.Lte(32), `this.flag <= 32`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.String())
		})
	}
}

// Runes render as code points, the way %v spells an int32.
func TestCharExpression(t *testing.T) {
	e := NewCharExpression(candidate(), "initial")
	tests := []struct {
		name     string
		input    P
		expected string
	}{
		{"Eq", e.Eq('a'), `this.initial == 97`},
		{"Ne", e.Ne('a'), `this.initial != 97`},
		{"Gt", e.Gt('m'), `this.initial > 109`},
		{"Lt", e.Lt('m'), `this.initial < 109`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.String())
		})
	}
}

func TestNumericExpression(t *testing.T) {
	e := NewNumericExpression[int](candidate(), "qty")
	tests := []struct {
		name     string
		input    P
		expected string
	}{
		{"Eq", e.Eq(1), `this.qty == 1`},
		{"Ne", e.Ne(0), `this.qty != 0`},
		{"Gt", e.Gt(30), `this.qty > 30`},
		{"Gte", e.Gte(18), `this.qty >= 18`},
		{"Lt", e.Lt(100), `this.qty < 100`},
		{"Lte", e.Lte(100), `this.qty <= 100`},
		{"In", e.In(1, 2, 3), `this.qty in [1,2,3]`},
		{"NotIn", e.NotIn(1, 2, 3), `this.qty not in [1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.String())
		})
	}
}

// Arbitrary-precision values carry their own rendering and are quoted
// like any other Stringer.
func TestNumericExpressionBig(t *testing.T) {
	balance := NewNumericExpression[*big.Rat](candidate(), "balance")
	assert.Equal(t, `this.balance == "100/3"`, balance.Eq(big.NewRat(100, 3)).String())

	total := NewNumericExpression[*big.Int](candidate(), "total")
	assert.Equal(t, `this.total > "1000000"`, total.Gt(big.NewInt(1000000)).String())

	ratio := NewNumericExpression[*big.Float](candidate(), "ratio")
	assert.Equal(t, `this.ratio < "2.5"`, ratio.Lt(big.NewFloat(2.5)).String())
}

func TestStringExpression(t *testing.T) {
	e := NewStringExpression(candidate(), "login")
	tests := []struct {
		name     string
		input    P
		expected string
	}{
		{"Eq", e.Eq("a8m"), `this.login == "a8m"`},
		{"Ne", e.Ne("root"), `this.login != "root"`},
		{"Gt", e.Gt("m"), `this.login > "m"`},
		{"Gte", e.Gte("m"), `this.login >= "m"`},
		{"Lt", e.Lt("m"), `this.login < "m"`},
		{"Lte", e.Lte("m"), `this.login <= "m"`},
		{"Contains", e.Contains("fb"), `contains(this.login, "fb")`},
		{"ContainsFold", e.ContainsFold("john"), `contains_fold(this.login, "john")`},
		{"EqualFold", e.EqualFold("ADMIN"), `equal_fold(this.login, "ADMIN")`},
		{"HasPrefix", e.HasPrefix("/api/"), `has_prefix(this.login, "/api/")`},
		{"HasSuffix", e.HasSuffix("admin"), `has_suffix(this.login, "admin")`},
		{"In", e.In("fb", "ent"), `this.login in ["fb","ent"]`},
		{"NotIn", e.NotIn("fb", "ent"), `this.login not in ["fb","ent"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.String())
		})
	}
}

func TestTemporalExpressions(t *testing.T) {
	born := civil.Date{Year: 1991, Month: time.May, Day: 16}
	lunch := civil.Time{Hour: 12, Minute: 30}
	synced := civil.DateTime{Date: born, Time: lunch}
	at := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	date := NewDateExpression(candidate(), "born")
	tod := NewTimeExpression(candidate(), "lunch")
	ldt := NewLocalDateTimeExpression(candidate(), "synced")
	ts := NewDateTimeExpression(candidate(), "created")
	ttl := NewDurationExpression(candidate(), "ttl")

	tests := []struct {
		name     string
		input    P
		expected string
	}{
		{"DateEq", date.Eq(born), `this.born == "1991-05-16"`},
		{"DateBefore", date.Before(born), `this.born < "1991-05-16"`},
		{"DateAfter", date.After(born), `this.born > "1991-05-16"`},
		{"TimeEq", tod.Eq(lunch), `this.lunch == "12:30:00"`},
		{"TimeBefore", tod.Before(lunch), `this.lunch < "12:30:00"`},
		{"LocalDateTimeEq", ldt.Eq(synced), `this.synced == "1991-05-16T12:30:00"`},
		{"LocalDateTimeAfter", ldt.After(synced), `this.synced > "1991-05-16T12:30:00"`},
		{"DateTimeEq", ts.Eq(at), `this.created == "2024-01-01 00:00:00 +0000 UTC"`},
		{"DateTimeBefore", ts.Before(at), `this.created < "2024-01-01 00:00:00 +0000 UTC"`},
		{"DurationGt", ttl.Gt(90 * time.Second), `this.ttl > "1m30s"`},
		{"DurationLte", ttl.Lte(time.Hour), `this.ttl <= "1h0m0s"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.String())
		})
	}
}

func TestOptionalExpression(t *testing.T) {
	e := NewOptionalExpression[string](candidate(), "nickname")
	tests := []struct {
		name     string
		input    P
		expected string
	}{
		{"Present", e.Present(), `this.nickname != nil`},
		{"Absent", e.Absent(), `this.nickname == nil`},
		{"Eq", e.Eq("gopher"), `this.nickname == "gopher"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.String())
		})
	}
}

type fuel string

const (
	gasoline fuel = "gasoline"
	electric fuel = "electric"
)

// Enum constants render bare, like their Go spelling in a composite.
func TestEnumExpression(t *testing.T) {
	e := NewEnumExpression(candidate(), "fuel")
	tests := []struct {
		name     string
		input    P
		expected string
	}{
		{"Eq", e.Eq(gasoline), `this.fuel == gasoline`},
		{"Ne", e.Ne(electric), `this.fuel != electric`},
		{"In", e.In(gasoline, electric), `this.fuel in [gasoline,electric]`},
		{"NotIn", e.NotIn(gasoline, electric), `this.fuel not in [gasoline,electric]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.String())
		})
	}
}

func TestContainerExpressions(t *testing.T) {
	attrs := NewMapExpression(candidate(), "attrs")
	tags := NewListExpression(candidate(), "tags")
	roles := NewCollectionExpression(candidate(), "roles")

	tests := []struct {
		name     string
		input    P
		expected string
	}{
		{"MapContainsKey", attrs.ContainsKey("color"), `contains_key(this.attrs, "color")`},
		{"MapContainsValue", attrs.ContainsValue(3), `contains_value(this.attrs, 3)`},
		{"MapIsEmpty", attrs.IsEmpty(), `is_empty(this.attrs)`},
		{"ListContains", tags.Contains("go"), `contains(this.tags, "go")`},
		{"ListIsEmpty", tags.IsEmpty(), `is_empty(this.tags)`},
		{"CollectionContains", roles.Contains("admin"), `contains(this.roles, "admin")`},
		{"CollectionIsEmpty", roles.IsEmpty(), `is_empty(this.roles)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.String())
		})
	}
}

func TestObjectExpression(t *testing.T) {
	e := NewObjectExpression(candidate(), "ref")
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.Equal(t, `this.ref == "6ba7b810-9dad-11d1-80b4-00c04fd430c8"`, e.Eq(id).String())
	assert.Equal(t, `this.ref != nil`, e.Ne(nil).String())
}

func TestGeometryExpressions(t *testing.T) {
	area := NewPolygonExpression(candidate(), "area")
	pin := NewPointExpression(candidate(), "pin")
	p := orb.Point{34.7, 32.1}

	tests := []struct {
		name     string
		input    P
		expected string
	}{
		{"Intersects", area.Intersects(p), `intersects(this.area, [34.7 32.1])`},
		{"Within", pin.Within(p), `within(this.pin, [34.7 32.1])`},
		{"GeoContains", area.GeoContains(p), `geo_contains(this.area, [34.7 32.1])`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.String())
		})
	}
}
