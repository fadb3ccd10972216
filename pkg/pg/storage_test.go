package pg_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trayshop/storefront/pkg/kvstore"
	"github.com/trayshop/storefront/pkg/pg"
)

// fakeDB interprets the three statements Storage issues.
type fakeDB struct {
	mu   sync.Mutex
	rows map[string][]byte
	err  error
}

type fakeRow struct {
	value []byte
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.value
	return nil
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return fakeRow{err: f.err}
	}
	v, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: v}
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return pgconn.CommandTag{}, f.err
	}
	key := args[0].(string)
	if len(args) == 2 {
		f.rows[key] = args[1].([]byte)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	delete(f.rows, key)
	return pgconn.NewCommandTag("DELETE 1"), nil
}

func TestStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := &fakeDB{rows: make(map[string][]byte)}
	s := pg.NewStorage(db)
	var _ kvstore.Storage = s

	v, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Nil(t, v, "no row means absent key")

	require.NoError(t, s.Set(ctx, "token", []byte("abc")))
	v, err = s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)

	require.NoError(t, s.Delete(ctx, "token"))
	v, err = s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.ErrorIs(t, s.Set(ctx, "", nil), kvstore.ErrEmptyKey)
}

func TestStorage_PropagatesErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	boom := errors.New("connection reset")
	s := pg.NewStorage(&fakeDB{rows: map[string][]byte{}, err: boom})

	_, err := s.Get(ctx, "cart")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Set(ctx, "cart", []byte("[]")), boom)
	assert.ErrorIs(t, s.Delete(ctx, "cart"), boom)
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestHealthcheck(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert.NoError(t, pg.Healthcheck(pinger{})(ctx))
	assert.ErrorIs(t, pg.Healthcheck(pinger{err: errors.New("down")})(ctx), pg.ErrUnhealthy)
}

func TestConnect_EmptyConnectionString(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, pg.IsNotFoundError(pgx.ErrNoRows))
	assert.False(t, pg.IsNotFoundError(nil))
	assert.False(t, pg.IsNotFoundError(errors.New("other")))
}
