package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postSchema() *Schema {
	return New("create_post",
		Text("content"),
		Text("title", Rule("max=20")),
	)
}

func TestNew(t *testing.T) {
	t.Run("keeps declaration order", func(t *testing.T) {
		s := postSchema()
		fields := s.Fields()
		require.Len(t, fields, 2)
		assert.Equal(t, "content", fields[0].Name)
		assert.Equal(t, "title", fields[1].Name)
		assert.Equal(t, "create_post", s.Name())
	})

	t.Run("fields are copied", func(t *testing.T) {
		s := postSchema()
		fields := s.Fields()
		fields[0].Name = "mutated"
		assert.Equal(t, "content", s.Fields()[0].Name)
	})

	t.Run("panics on bad declarations", func(t *testing.T) {
		assert.Panics(t, func() { New("") })
		assert.Panics(t, func() { New("s", Prop("")) })
		assert.Panics(t, func() { New("s", Text("a"), Text("a")) })
		assert.Panics(t, func() { New("s", Text("a", Rule("no_such_rule"))) })
	})

	t.Run("field helpers", func(t *testing.T) {
		f := Text("title")
		assert.True(t, f.Required())
		kind, ok := f.Type()
		assert.True(t, ok)
		assert.Equal(t, String, kind)

		optional := Prop("tags", TypeIs(Array))
		assert.False(t, optional.Required())
	})
}

func TestCoerce(t *testing.T) {
	s := postSchema()

	t.Run("copies declared fields and drops the rest", func(t *testing.T) {
		inst := s.Coerce(map[string]any{"title": "Hello", "content": "World", "extra": 1, "another": true})

		assert.Equal(t, map[string]any{"title": "Hello", "content": "World"}, inst.Map())
		assert.Equal(t, []string{"another", "extra"}, inst.Unknown())
		assert.Same(t, s, inst.Schema())
	})

	t.Run("missing fields stay unset", func(t *testing.T) {
		inst := s.Coerce(map[string]any{"title": "Hello"})

		_, ok := inst.Get("content")
		assert.False(t, ok)
		assert.False(t, inst.IsSet("content"))
		assert.True(t, inst.IsSet("title"))
	})

	t.Run("null is present but not set", func(t *testing.T) {
		inst := s.Coerce(map[string]any{"title": nil})

		_, ok := inst.Get("title")
		assert.True(t, ok)
		assert.False(t, inst.IsSet("title"))
		assert.Empty(t, inst.Map())
	})

	t.Run("no conversion of wrong types", func(t *testing.T) {
		inst := s.Coerce(map[string]any{"title": 42.0})

		v, _ := inst.Get("title")
		assert.Equal(t, 42.0, v)
	})

	t.Run("nil input", func(t *testing.T) {
		inst := s.Coerce(nil)
		assert.Empty(t, inst.Map())
		assert.Empty(t, inst.Unknown())
	})
}

func TestEvaluate(t *testing.T) {
	ctx := context.Background()
	s := postSchema()

	tests := []struct {
		name     string
		raw      map[string]any
		opts     EvalOptions
		fields   []string
		rules    []string
		messages string
	}{
		{
			name:     "all fields valid",
			raw:      map[string]any{"title": "Hello", "content": "World"},
			messages: "",
		},
		{
			name:     "empty body reports every required field",
			raw:      map[string]any{},
			fields:   []string{"content", "title"},
			rules:    []string{RuleRequired, RuleRequired},
			messages: "content is required, title is required",
		},
		{
			name:     "one missing field",
			raw:      map[string]any{"title": "Hello"},
			fields:   []string{"content"},
			rules:    []string{RuleRequired},
			messages: "content is required",
		},
		{
			name:     "null counts as missing",
			raw:      map[string]any{"title": "Hello", "content": nil},
			fields:   []string{"content"},
			rules:    []string{RuleRequired},
			messages: "content is required",
		},
		{
			name:     "wrong types",
			raw:      map[string]any{"title": 1.0, "content": []any{"a"}},
			fields:   []string{"content", "title"},
			rules:    []string{RuleType, RuleType},
			messages: "content must be a string, title must be a string",
		},
		{
			name:     "missing and wrong type together",
			raw:      map[string]any{"title": true},
			fields:   []string{"content", "title"},
			rules:    []string{RuleRequired, RuleType},
			messages: "content is required, title must be a string",
		},
		{
			name:     "rule violation",
			raw:      map[string]any{"title": "a title that is far too long", "content": "x"},
			fields:   []string{"title"},
			rules:    []string{"max"},
			messages: "title must be at most 20 characters",
		},
		{
			name:   "skip missing ignores absent fields",
			raw:    map[string]any{"title": "Hello"},
			opts:   EvalOptions{SkipMissingProperties: true},
			fields: nil,
		},
		{
			name:     "skip missing still checks present types",
			raw:      map[string]any{"content": 5.0},
			opts:     EvalOptions{SkipMissingProperties: true},
			fields:   []string{"content"},
			rules:    []string{RuleType},
			messages: "content must be a string",
		},
		{
			name:   "extra fields are ignored by default",
			raw:    map[string]any{"title": "Hello", "content": "World", "extra": 1},
			fields: nil,
		},
		{
			name:     "extra fields are reported when forbidden",
			raw:      map[string]any{"title": "Hello", "content": "World", "extra": 1},
			opts:     EvalOptions{ForbidUnknownFields: true},
			fields:   []string{"extra"},
			rules:    []string{RuleUnknown},
			messages: "property extra should not exist",
		},
		{
			name:     "unknown fields come after declared ones",
			raw:      map[string]any{"zzz": 1, "title": 3.0},
			opts:     EvalOptions{ForbidUnknownFields: true},
			fields:   []string{"content", "title", "zzz"},
			rules:    []string{RuleRequired, RuleType, RuleUnknown},
			messages: "content is required, title must be a string, property zzz should not exist",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, violations := s.Check(ctx, tc.raw, tc.opts)

			if len(tc.fields) == 0 {
				assert.Empty(t, violations)
				return
			}
			assert.Equal(t, tc.fields, violations.Fields())
			rules := make([]string, len(violations))
			for i, v := range violations {
				rules[i] = v.Rule
			}
			assert.Equal(t, tc.rules, rules)
			assert.Equal(t, tc.messages, violations.Message())
		})
	}
}

// TestEvaluateIsDeterministic runs the same input twice and expects the same result.
func TestEvaluateIsDeterministic(t *testing.T) {
	ctx := context.Background()
	s := postSchema()
	raw := map[string]any{"title": 7.0, "unknown": "x"}
	opts := EvalOptions{ForbidUnknownFields: true}

	_, first := s.Check(ctx, raw, opts)
	_, second := s.Check(ctx, raw, opts)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, map[string]any{"title": 7.0, "unknown": "x"}, raw, "input must not be modified")
}

func TestKindMatches(t *testing.T) {
	tests := []struct {
		kind  Kind
		value any
		want  bool
	}{
		{String, "x", true},
		{String, 1.0, false},
		{Number, 1.5, true},
		{Number, 3, true},
		{Number, "1", false},
		{Integer, 2.0, true},
		{Integer, 2.5, false},
		{Integer, int64(4), true},
		{Boolean, false, true},
		{Boolean, "true", false},
		{Object, map[string]any{}, true},
		{Object, []any{}, false},
		{Array, []any{1.0}, true},
		{Array, []string{"a"}, true},
		{Array, "abc", false},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.kind.Matches(tc.value), "value %#v", tc.value)
		})
	}
}

func TestTypeMessages(t *testing.T) {
	ctx := context.Background()
	s := New("kinds",
		Prop("n", TypeIs(Number)),
		Prop("i", TypeIs(Integer)),
		Prop("b", TypeIs(Boolean)),
		Prop("o", TypeIs(Object)),
		Prop("a", TypeIs(Array)),
	)

	_, violations := s.Check(ctx, map[string]any{
		"n": "x", "i": 1.5, "b": 0.0, "o": "x", "a": map[string]any{},
	}, EvalOptions{})

	assert.Equal(t,
		"n must be a number, i must be an integer number, b must be a boolean value, o must be an object, a must be an array",
		violations.Message())
}

func TestOptionalFieldsAreNotRequired(t *testing.T) {
	s := New("optional", Prop("tags", TypeIs(Array)))

	_, violations := s.Check(context.Background(), map[string]any{}, EvalOptions{})

	assert.Empty(t, violations)
}

func TestNumericRules(t *testing.T) {
	s := New("page", Prop("limit", TypeIs(Integer), Rule("min=1,max=100")))

	_, low := s.Check(context.Background(), map[string]any{"limit": 0.0}, EvalOptions{})
	_, high := s.Check(context.Background(), map[string]any{"limit": 500.0}, EvalOptions{})
	_, ok := s.Check(context.Background(), map[string]any{"limit": 50.0}, EvalOptions{})

	assert.Equal(t, "limit must not be less than 1", low.Message())
	assert.Equal(t, "limit must not be greater than 100", high.Message())
	assert.Empty(t, ok)
}

func TestRuleOnUnmeasurableValue(t *testing.T) {
	s := New("P", Prop("flag", Rule("max=5")))

	var vs Violations
	require.NotPanics(t, func() {
		_, vs = s.Check(context.Background(), map[string]any{"flag": true}, EvalOptions{})
	})

	require.Len(t, vs, 1)
	assert.Equal(t, Violation{Field: "flag", Rule: "invalid", Message: "flag could not be validated"}, vs[0])

	_, vs = s.Check(context.Background(), map[string]any{"flag": "short"}, EvalOptions{})
	assert.Empty(t, vs)
}

func TestInstanceDecode(t *testing.T) {
	type createPost struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	type patchPost struct {
		Title   *string `json:"title,omitempty"`
		Content *string `json:"content,omitempty"`
	}

	s := postSchema()

	t.Run("full", func(t *testing.T) {
		var dst createPost
		require.NoError(t, s.Coerce(map[string]any{"title": "Hello", "content": "World", "extra": 1}).Decode(&dst))
		assert.Equal(t, createPost{Title: "Hello", Content: "World"}, dst)
	})

	t.Run("partial", func(t *testing.T) {
		var dst patchPost
		require.NoError(t, s.Coerce(map[string]any{"title": "Hello"}).Decode(&dst))
		require.NotNil(t, dst.Title)
		assert.Equal(t, "Hello", *dst.Title)
		assert.Nil(t, dst.Content)
	})

	t.Run("wrong type fails", func(t *testing.T) {
		var dst createPost
		err := s.Coerce(map[string]any{"title": []any{1.0}}).Decode(&dst)
		assert.Error(t, err)
	})
}
