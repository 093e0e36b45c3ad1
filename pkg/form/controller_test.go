package form_test

import (
	"context"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
)

func TestController_RequiredEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, value := range []any{nil, "", "   ", []string{}} {
		r := form.New()
		c := r.Decorate("username", form.FieldOptions{Required: true, InitialValue: value})(nil).Controller()

		res, err := c.TriggerValidate(ctx, nil, nil).Await(ctx)
		require.NoError(t, err)
		assert.True(t, res.Error, "value %#v", value)
		assert.Equal(t, form.KindEmpty, res.Type)
		assert.Equal(t, "username is required", res.Message)
		assert.Equal(t, form.StatusEmpty, c.State().Status)

		rec, ok := r.Record("username")
		require.True(t, ok)
		assert.Equal(t, form.StatusEmpty, rec.Status)
		assert.False(t, rec.Validate)
		assert.True(t, rec.IsValidated)
	}
}

func TestController_EmptyMessage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("field message wins", func(t *testing.T) {
		c := form.New().Decorate("username", form.FieldOptions{
			Required: true,
			Message:  "Pick a username",
		})(nil).Controller()
		res, _ := c.TriggerValidate(ctx, nil, nil).Await(ctx)
		assert.Equal(t, "Pick a username", res.Message)
		assert.Equal(t, "Pick a username", c.State().Message)
	})

	t.Run("label is used in default message", func(t *testing.T) {
		c := form.New().Decorate("username", form.FieldOptions{Required: true, Label: "Username"})(nil).Controller()
		res, _ := c.TriggerValidate(ctx, nil, nil).Await(ctx)
		assert.Equal(t, "Username is required", res.Message)
	})

	t.Run("default messages follow the registry language", func(t *testing.T) {
		r := form.New(form.WithLanguage("zh-CN"))
		c := r.Decorate("username", form.FieldOptions{Required: true, Label: "用户名"})(nil).Controller()
		res, _ := c.TriggerValidate(ctx, nil, nil).Await(ctx)
		assert.Equal(t, "用户名不能为空", res.Message)
		assert.Equal(t, "正在验证...", c.Props().ValidatingMessage)
	})
}

func TestController_EmptyNotRequiredSkipsRules(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var calls atomic.Int32
	c := form.New().Decorate("nickname", form.FieldOptions{
		Rules: []form.Rule{{Validate: func(any, form.Fields) bool {
			calls.Add(1)
			return false
		}}},
	})(nil).Controller()

	res, err := c.TriggerValidate(ctx, nil, nil).Await(ctx)
	require.NoError(t, err)
	assert.False(t, res.Error)
	assert.Zero(t, calls.Load())
	assert.Equal(t, form.StatusDefault, c.State().Status)
}

func TestController_PatternRule(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r := form.New()
	c := r.Decorate("email", form.FieldOptions{
		Rules: []form.Rule{{Pattern: emailPattern}},
	})(nil).Controller()

	c.SetValue(ctx, "abc")
	res, err := c.TriggerValidate(ctx, nil, nil).Await(ctx)
	require.NoError(t, err)
	assert.True(t, res.Error)
	assert.Equal(t, form.KindRule, res.Type)
	assert.Equal(t, form.KindPattern, res.Rule)
	assert.Equal(t, "email is invalid", res.Message)
	assert.Equal(t, form.StatusError, c.State().Status)

	c.SetValue(ctx, "a@b.com")
	res, err = c.TriggerValidate(ctx, nil, nil).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, form.ValidationResult{Error: false}, res)

	s := c.State()
	assert.Equal(t, form.StatusDefault, s.Status)
	assert.True(t, s.Validate)
	assert.Empty(t, s.Message)
	assert.Nil(t, s.Error)
}

func TestController_RuleMessage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := form.New().Decorate("age", form.FieldOptions{
		InitialValue: 12,
		Rules: []form.Rule{{
			Validate: func(v any, _ form.Fields) bool { return v.(int) >= 18 },
			Message:  "Must be an adult",
		}},
	})(nil).Controller()

	res, _ := c.TriggerValidate(ctx, nil, nil).Await(ctx)
	assert.Equal(t, form.KindRule, res.Type)
	assert.Equal(t, form.KindValidate, res.Rule)
	assert.Equal(t, "Must be an adult", res.Message)
	assert.Equal(t, "Must be an adult", c.Props().Message)
}

func TestController_Scales(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("rule scale only skips the empty check", func(t *testing.T) {
		c := form.New().Decorate("username", form.FieldOptions{Required: true})(nil).Controller()
		res, _ := c.TriggerValidate(ctx, []form.Scale{form.ScaleRule}, nil).Await(ctx)
		assert.False(t, res.Error)
	})

	t.Run("empty scale only skips rules", func(t *testing.T) {
		c := form.New().Decorate("email", form.FieldOptions{
			InitialValue: "abc",
			Rules:        []form.Rule{{Pattern: emailPattern}},
		})(nil).Controller()
		res, _ := c.TriggerValidate(ctx, []form.Scale{form.ScaleEmpty}, nil).Await(ctx)
		assert.False(t, res.Error)
	})
}

func TestController_AsyncRule(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	release := make(chan struct{})
	w := &recorder{}
	c := form.New().Decorate("code", form.FieldOptions{
		InitialValue: "1234",
		Validating:   "Checking code",
		Rules:        []form.Rule{gatedRule(release, false, "Unknown code")},
	})(w).Controller()

	var callbacks atomic.Int32
	f := c.TriggerValidate(ctx, nil, func(form.ValidationResult) { callbacks.Add(1) })

	assert.False(t, f.IsComplete())
	assert.True(t, c.State().IsValidating)
	assert.True(t, w.last().Validating)
	assert.Equal(t, "Checking code", w.last().ValidatingMessage)
	assert.Zero(t, callbacks.Load())

	close(release)
	res, err := f.Await(ctx)
	require.NoError(t, err)
	assert.True(t, res.Error)
	assert.Equal(t, form.KindAsyncValidate, res.Type)
	assert.Equal(t, "Unknown code", res.Message)

	s := c.State()
	assert.False(t, s.IsValidating)
	assert.True(t, s.IsValidated)
	assert.Equal(t, form.StatusError, s.Status)
	assert.False(t, w.last().Validating)
	assert.Equal(t, int32(1), callbacks.Load())
}

func TestController_AsyncPassClearsValidating(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	release := make(chan struct{})
	c := form.New().Decorate("code", form.FieldOptions{
		InitialValue: "1234",
		Rules:        []form.Rule{gatedRule(release, true, "")},
	})(nil).Controller()

	f := c.TriggerValidate(ctx, nil, nil)
	assert.True(t, c.State().IsValidating)
	close(release)

	res, err := f.Await(ctx)
	require.NoError(t, err)
	assert.False(t, res.Error)
	assert.False(t, c.State().IsValidating)
	assert.Equal(t, form.StatusDefault, c.State().Status)
}

func TestController_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := form.New().Decorate("email", form.FieldOptions{
		Required:     true,
		InitialValue: "a@b.com",
		Rules:        []form.Rule{{Pattern: emailPattern}},
	})(nil).Controller()

	first, err := c.TriggerValidate(ctx, nil, nil).Await(ctx)
	require.NoError(t, err)
	firstState := c.State()

	second, err := c.TriggerValidate(ctx, nil, nil).Await(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstState, c.State())
}

func TestController_SetValue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("validates on change and leaves field unvalidated", func(t *testing.T) {
		r := form.New()
		w := &recorder{}
		c := r.Decorate("email", form.FieldOptions{
			Rules: []form.Rule{{Pattern: emailPattern}},
		})(w).Controller()

		res, err := c.SetValue(ctx, "abc").Await(ctx)
		require.NoError(t, err)
		assert.True(t, res.Error)

		s := c.State()
		assert.Equal(t, "abc", s.Value)
		assert.Equal(t, form.StatusError, s.Status)
		assert.False(t, s.IsValidated)
		assert.Equal(t, "abc", w.last().Value)
		assert.Equal(t, form.StatusError, w.last().Status)

		rec, _ := r.Record("email")
		assert.Equal(t, "abc", rec.Value)
		assert.False(t, rec.IsValidated)
		assert.False(t, rec.Validate)
	})

	t.Run("blur trigger does not validate on change", func(t *testing.T) {
		var calls atomic.Int32
		c := form.New(form.WithTrigger(form.ValidateOnBlur)).Decorate("email", form.FieldOptions{
			Rules: []form.Rule{{Validate: func(any, form.Fields) bool {
				calls.Add(1)
				return false
			}}},
		})(nil).Controller()

		f := c.SetValue(ctx, "abc")
		res, ok := f.Result()
		require.True(t, ok)
		assert.Equal(t, form.ValidationResult{}, res)
		assert.Zero(t, calls.Load())
		assert.Equal(t, "abc", c.State().Value)
		assert.Equal(t, form.StatusDefault, c.State().Status)
	})

	t.Run("widget onChange drives the controller", func(t *testing.T) {
		w := &recorder{}
		form.New().Decorate("email", form.FieldOptions{
			Rules: []form.Rule{{Pattern: emailPattern}},
		})(w)

		w.last().OnChange("abc")
		assert.Equal(t, "abc", w.last().Value)
		assert.Equal(t, form.StatusError, w.last().Status)
		assert.Equal(t, "email is invalid", w.last().Message)
	})
}

func TestController_Blur(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var calls atomic.Int32
	c := form.New(form.WithTrigger(form.ValidateOnBlur)).Decorate("email", form.FieldOptions{
		Rules: []form.Rule{{Validate: func(v any, _ form.Fields) bool {
			calls.Add(1)
			return emailPattern.MatchString(v.(string))
		}}},
	})(nil).Controller()

	c.Focus()
	assert.True(t, c.State().Focused)
	c.SetValue(ctx, "abc")
	res, err := c.Blur(ctx).Await(ctx)
	require.NoError(t, err)
	assert.True(t, res.Error)
	assert.False(t, c.State().Focused)
	assert.Equal(t, int32(1), calls.Load())

	// unchanged since focus: cached result, no new pass
	c.Focus()
	res, err = c.Blur(ctx).Await(ctx)
	require.NoError(t, err)
	assert.True(t, res.Error)
	assert.Equal(t, form.KindRule, res.Type)
	assert.Equal(t, int32(1), calls.Load())

	c.Focus()
	c.SetValue(ctx, "a@b.com")
	res, err = c.Blur(ctx).Await(ctx)
	require.NoError(t, err)
	assert.False(t, res.Error)
	assert.Equal(t, int32(2), calls.Load())
}

func TestController_UpdateStatus(t *testing.T) {
	t.Parallel()

	r := form.New()
	w := &recorder{}
	c := r.Decorate("email", form.FieldOptions{})(w).Controller()

	called := false
	c.UpdateStatus(func(s *form.FieldState) {
		s.Status = form.StatusWarning
		s.Message = "Looks unusual"
		s.Validate = true
		s.IsValidated = true
	}, func() { called = true })

	assert.True(t, called)
	assert.Equal(t, form.StatusWarning, c.State().Status)
	assert.Equal(t, "Looks unusual", w.last().Message)

	rec, _ := r.Record("email")
	assert.Equal(t, form.StatusWarning, rec.Status)
	assert.True(t, rec.Validate)
	assert.True(t, rec.IsValidated)
}

func TestController_CustomStatusIsKept(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := form.New().Decorate("code", form.FieldOptions{
		InitialValue: "abc",
		Rules:        []form.Rule{{Pattern: regexp.MustCompile(`^\d+$`), Message: "digits only"}},
	})(nil).Controller()

	c.UpdateStatus(func(s *form.FieldState) { s.Status = "pending-review" }, nil)

	res, err := c.TriggerValidate(ctx, nil, nil).Await(ctx)
	require.NoError(t, err)
	assert.True(t, res.Error)

	s := c.State()
	assert.Equal(t, form.Status("pending-review"), s.Status)
	assert.False(t, s.Validate)
	assert.Equal(t, "digits only", s.Message)
}

func TestController_StaleAsyncResult(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	setup := func(opts ...form.Option) (*form.FieldController, chan struct{}, chan struct{}) {
		oldGate, newGate := make(chan struct{}), make(chan struct{})
		gates := map[string]chan struct{}{"old": oldGate, "new": newGate}
		c := form.New(opts...).Decorate("username", form.FieldOptions{
			Rules: []form.Rule{{
				AsyncValidate: func(_ context.Context, v any, _ form.Fields) (bool, error) {
					<-gates[v.(string)]
					return v == "new", nil
				},
				Message: "taken",
			}},
		})(nil).Controller()
		return c, oldGate, newGate
	}

	t.Run("older result is discarded", func(t *testing.T) {
		c, oldGate, newGate := setup()

		oldF := c.SetValue(ctx, "old")
		newF := c.SetValue(ctx, "new")

		close(newGate)
		res, err := newF.Await(ctx)
		require.NoError(t, err)
		assert.False(t, res.Error)

		close(oldGate)
		res, err = oldF.Await(ctx)
		require.NoError(t, err)
		assert.True(t, res.Error)

		s := c.State()
		assert.Equal(t, "new", s.Value)
		assert.True(t, s.Validate)
		assert.Equal(t, form.StatusDefault, s.Status)
		assert.False(t, s.IsValidating)
	})

	t.Run("parity mode applies results in settle order", func(t *testing.T) {
		c, oldGate, newGate := setup(form.WithDiscardStaleResults(false))

		oldF := c.SetValue(ctx, "old")
		newF := c.SetValue(ctx, "new")

		close(newGate)
		_, err := newF.Await(ctx)
		require.NoError(t, err)

		close(oldGate)
		_, err = oldF.Await(ctx)
		require.NoError(t, err)

		s := c.State()
		assert.Equal(t, "new", s.Value)
		assert.False(t, s.Validate)
		assert.Equal(t, form.StatusError, s.Status)
		assert.Equal(t, "taken", s.Message)
	})

	t.Run("value change outdates a pending pass under blur trigger", func(t *testing.T) {
		release := make(chan struct{})
		r := form.New(form.WithTrigger(form.ValidateOnBlur))
		c := r.Decorate("username", form.FieldOptions{
			InitialValue: "taken",
			Rules:        []form.Rule{gatedTaken(release)},
		})(nil).Controller()

		pending := c.TriggerValidate(ctx, nil, nil)
		assert.True(t, c.State().IsValidating)

		changed := c.SetValue(ctx, "free")
		assert.True(t, changed.IsComplete())
		assert.False(t, c.State().IsValidating)

		close(release)
		res, err := pending.Await(ctx)
		require.NoError(t, err)
		assert.True(t, res.Error)

		s := c.State()
		assert.Equal(t, "free", s.Value)
		assert.False(t, s.IsValidated)
		assert.False(t, s.IsValidating)
		assert.Equal(t, form.StatusDefault, s.Status)

		rec, ok := r.Record("username")
		require.True(t, ok)
		assert.False(t, rec.IsValidated)
		assert.Equal(t, form.StatusDefault, rec.Status)

		report, err := r.ValidateFields(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, report.Errors)
		assert.Equal(t, "free", report.Values["username"])
	})
}

func TestController_Props(t *testing.T) {
	t.Parallel()

	w := &recorder{}
	b := form.New().Decorate("email", form.FieldOptions{
		Label:        "Email",
		Required:     true,
		InitialValue: "a@b.com",
	})(w)

	assert.Equal(t, 1, w.count())
	p := w.last()
	assert.Equal(t, "email", p.Name)
	assert.Equal(t, "Email", p.Label)
	assert.Equal(t, "a@b.com", p.Value)
	assert.Equal(t, form.StatusDefault, p.Status)
	assert.True(t, p.Required)
	assert.Equal(t, "Validating...", p.ValidatingMessage)
	assert.NotNil(t, p.OnChange)

	p.OnFocus()
	assert.True(t, w.last().Focused)
	w.last().OnBlur()
	assert.False(t, w.last().Focused)

	before := w.count()
	b.Render()
	assert.Equal(t, before+1, w.count())
}

func TestController_RulesReadOtherFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r := form.New()
	r.Decorate("password", form.FieldOptions{InitialValue: "secret"})(nil)
	confirm := r.Decorate("confirm", form.FieldOptions{
		Rules: []form.Rule{{
			Validate: func(v any, fields form.Fields) bool {
				pw, ok := fields.Value("password")
				return ok && pw == v
			},
			Message: "Passwords do not match",
		}},
	})(nil).Controller()

	res, _ := confirm.SetValue(ctx, "other").Await(ctx)
	assert.Equal(t, "Passwords do not match", res.Message)

	res, _ = confirm.SetValue(ctx, "secret").Await(ctx)
	assert.False(t, res.Error)
}

func TestController_PatternMatchesRegexpUsage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := form.New().Decorate("zip", form.FieldOptions{
		InitialValue: "1234",
		Rules:        []form.Rule{{Pattern: regexp.MustCompile(`^\d{5}$`), Message: "Five digits"}},
	})(nil).Controller()

	res, _ := c.TriggerValidate(ctx, nil, nil).Await(ctx)
	assert.Equal(t, "Five digits", res.Message)
	assert.Equal(t, form.KindPattern, res.Rule)
}
