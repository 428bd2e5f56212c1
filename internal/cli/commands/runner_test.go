package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"context-variants/internal/entity"
	"context-variants/internal/session"
)

func numberedEntities(n int) []*entity.Entity {
	ents := make([]*entity.Entity, n)
	for i := range ents {
		ents[i] = &entity.Entity{
			Name:   fmt.Sprintf("E%02d", i),
			Rules:  "Create: requires(a).optional(b)",
			Fields: []entity.FieldDescriptor{{Name: "a", Type: "int"}, {Name: "b", Type: "string"}},
		}
	}

	return ents
}

func TestResolveAllKeepsInputOrder(t *testing.T) {
	ents := numberedEntities(20)
	// one failure in the middle must not stop the others
	ents[7].Rules = "Create: requires(a)"

	for _, jobs := range []int{1, 3, 20, 0} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			out, err := ResolveAll(context.Background(), ents, session.Options{}, jobs)
			require.NoError(t, err)
			require.Len(t, out, len(ents))

			for i, o := range out {
				assert.Same(t, ents[i], o.Entity)
			}

			assert.Equal(t, 1, out.Failed())

			var verr *session.ValidationError
			require.True(t, errors.As(out[7].Err, &verr))
			assert.Equal(t, "E07", verr.Entity)

			tables := out.Tables()
			require.Len(t, tables, 19)
			assert.Equal(t, "E06", tables[6].Entity)
			assert.Equal(t, "E08", tables[7].Entity)
			assert.Equal(t, "*string", tables[0].Contexts[0].Fields[1].Type)
		})
	}
}

func TestResolveAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ResolveAll(ctx, numberedEntities(4), session.Options{}, 2)
	require.ErrorIs(t, err, context.Canceled)
}
