package quiver

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newListRouter registers the canonical paginated listing route used across
// the dispatch tests.
func newListRouter(t *testing.T, captured *Args) *Router {
	t.Helper()
	r := NewRouter()
	r.MustRegister(func(ctx *Context, args Args) error {
		*captured = args
		return nil
	}, WithName("list_items"), AsRoot(), WithParams(MustParams("offset:int=0", "limit:int=20")...))
	return r
}

func TestRouter_Dispatch_RootWithDefaults(t *testing.T) {
	var got Args
	r := newListRouter(t, &got)

	require.NoError(t, r.Dispatch(context.Background(), ""))
	assert.Equal(t, 0, got.Int("offset"))
	assert.Equal(t, 20, got.Int("limit"))
}

func TestRouter_Dispatch_ByNameWithOverride(t *testing.T) {
	var got Args
	r := newListRouter(t, &got)

	require.NoError(t, r.Dispatch(context.Background(), "r=list_items&offset=40"))
	assert.Equal(t, 40, got.Int("offset"))
	assert.Equal(t, 20, got.Int("limit"))
}

func TestRouter_Dispatch_MalformedInt(t *testing.T) {
	var got Args
	r := newListRouter(t, &got)

	err := r.Dispatch(context.Background(), "r=list_items&offset=abc")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "offset", validationErr.Field)
}

func TestRouter_Dispatch_MissingRequired(t *testing.T) {
	r := NewRouter()
	called := false
	r.MustRegister(func(ctx *Context, args Args) error {
		called = true
		return nil
	}, WithName("search"), WithParams(String("q")))

	err := r.Dispatch(context.Background(), "r=search")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "q", validationErr.Field)
	assert.False(t, called, "binding failures abort before the handler runs")
}

func TestRouter_Dispatch_UnknownRoute(t *testing.T) {
	r := NewRouter()
	err := r.Dispatch(context.Background(), "r=ghost")
	var routerErr *RouterError
	require.ErrorAs(t, err, &routerErr)
}

func TestRouter_Dispatch_NoRootRegistered(t *testing.T) {
	r := NewRouter()
	r.MustRegister(noopHandler, WithName("a"))
	err := r.Dispatch(context.Background(), "")
	var routerErr *RouterError
	require.ErrorAs(t, err, &routerErr)
}

func TestRouter_Dispatch_EmptySelectorFallsBackToRoot(t *testing.T) {
	var got Args
	r := newListRouter(t, &got)
	require.NoError(t, r.Dispatch(context.Background(), "r="))
	assert.Equal(t, 0, got.Int("offset"))
}

func TestRouter_Dispatch_SettingsScope(t *testing.T) {
	settings := MapSettings{"page_size": 50, "quality": "hd"}
	r := NewRouter(WithSettings(settings))

	var got Args
	r.MustRegister(func(ctx *Context, args Args) error {
		got = args
		return nil
	}, WithName("list"), WithParams(
		Int("offset").WithDefault(0),
		Int("limit").WithKey("page_size").FromSettings(),
		String("quality").FromSettings(),
	))

	require.NoError(t, r.Dispatch(context.Background(), "r=list&limit=999"),
		"settings parameters ignore the query string entirely")
	assert.Equal(t, 50, got.Int("limit"))
	assert.Equal(t, "hd", got.String("quality"))
}

func TestRouter_Dispatch_SettingsAlwaysProvideValue(t *testing.T) {
	r := NewRouter(WithSettings(MapSettings{}))
	var got Args
	r.MustRegister(func(ctx *Context, args Args) error {
		got = args
		return nil
	}, WithName("list"), WithParams(Int("limit").FromSettings()))

	require.NoError(t, r.Dispatch(context.Background(), "r=list"))
	assert.Equal(t, 0, got.Int("limit"), "unset settings fall back to the type default")
}

func TestRouter_Dispatch_ListBinding(t *testing.T) {
	var got Args
	r := NewRouter()
	r.MustRegister(func(ctx *Context, args Args) error {
		got = args
		return nil
	}, WithName("tags"), WithParams(String("tags").AsList(), Int("ids").AsList().WithDefault([]int{})))

	require.NoError(t, r.Dispatch(context.Background(), "r=tags&tags=a&tags=b&ids=1&ids=2"))
	assert.Equal(t, []string{"a", "b"}, got.Strings("tags"))
	assert.Equal(t, []int{1, 2}, got.Ints("ids"))

	require.NoError(t, r.Dispatch(context.Background(), "r=tags&tags=solo"))
	assert.Equal(t, []string{"solo"}, got.Strings("tags"))
	assert.Equal(t, []int{}, got.Ints("ids"), "absent list with default binds the default")
}

func TestRouter_Dispatch_KeyOverrideBinding(t *testing.T) {
	var got Args
	r := NewRouter()
	r.MustRegister(func(ctx *Context, args Args) error {
		got = args
		return nil
	}, WithName("user"), WithParams(Int("uid").WithKey("user_id")))

	require.NoError(t, r.Dispatch(context.Background(), "r=user&user_id=7"))
	assert.Equal(t, 7, got.Int("uid"), "argument is looked up by the external key, bound under the internal name")
}

func TestRouter_Dispatch_UUIDBinding(t *testing.T) {
	id := uuid.New()
	var got Args
	r := NewRouter()
	r.MustRegister(func(ctx *Context, args Args) error {
		got = args
		return nil
	}, WithName("item"), WithParams(UUID("id")))

	require.NoError(t, r.Dispatch(context.Background(), "r=item&id="+id.String()))
	assert.Equal(t, id, got.UUID("id"))
}

func TestRouter_Dispatch_CustomCoercer(t *testing.T) {
	var got Args
	r := NewRouter()
	upper := func(raw string) (any, error) { return "custom:" + raw, nil }
	r.MustRegister(func(ctx *Context, args Args) error {
		got = args
		return nil
	}, WithName("c"), WithParams(Custom("v", upper)))

	require.NoError(t, r.Dispatch(context.Background(), "r=c&v=x"))
	v, ok := got.Get("v")
	require.True(t, ok)
	assert.Equal(t, "custom:x", v)
}

func TestRouter_Dispatch_HandlerError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRouter()
	r.MustRegister(func(ctx *Context, args Args) error {
		return boom
	}, WithName("fail"))

	err := r.Dispatch(context.Background(), "r=fail")
	assert.ErrorIs(t, err, boom, "an unhandled error propagates unchanged")
}

func TestRouter_Dispatch_ContextExposesCollaborators(t *testing.T) {
	settings := MapSettings{"k": "v"}
	r := NewRouter(WithSettings(settings))
	var seen *Context
	r.MustRegister(func(ctx *Context, args Args) error {
		seen = ctx
		return nil
	}, WithName("inspect"))

	require.NoError(t, r.Dispatch(context.Background(), "r=inspect&x=1"))
	require.NotNil(t, seen)
	assert.NotNil(t, seen.Logger())
	assert.NotEmpty(t, seen.RequestID())
	assert.Equal(t, "v", seen.Settings().GetString("k"))
	assert.Equal(t, "1", seen.Query().Get("x"))
	assert.Equal(t, "inspect", seen.Route().Name)
	assert.NotNil(t, seen.Directory())

	u, err := seen.URLFor("inspect")
	require.NoError(t, err)
	assert.Equal(t, "?r=inspect", u)
}

func TestRouter_Dispatch_SettingsFallbackWithoutCollaborator(t *testing.T) {
	r := NewRouter()
	var got string
	r.MustRegister(func(ctx *Context, args Args) error {
		require.NotNil(t, ctx.Settings())
		got = ctx.Settings().GetString("anything")
		return nil
	}, WithName("inspect"))

	require.NoError(t, r.Dispatch(context.Background(), "r=inspect"))
	assert.Empty(t, got, "unset settings resolve to type defaults")
}

func TestRouter_Dispatch_RoundTrip(t *testing.T) {
	var got Args
	r := newListRouter(t, &got)

	u, err := r.URLFor("list_items", With("offset", 40), With("limit", 5))
	require.NoError(t, err)

	require.NoError(t, r.Dispatch(context.Background(), u))
	assert.Equal(t, 40, got.Int("offset"))
	assert.Equal(t, 5, got.Int("limit"))
}
