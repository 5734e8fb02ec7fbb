package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tickmint/internal/domain"
	"tickmint/internal/storage"
)

// ChunkStore implements storage.ChunkStore using PostgreSQL.
type ChunkStore struct {
	pool *Pool
}

// NewChunkStore creates a new ChunkStore.
func NewChunkStore(pool *Pool) *ChunkStore {
	return &ChunkStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ChunkStore = (*ChunkStore)(nil)

// Insert adds a new chunk. Returns ErrDuplicateKey if the id exists.
func (s *ChunkStore) Insert(ctx context.Context, c *domain.Chunk) error {
	if c == nil || c.ID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO chunks (chunk_id, tick, amount, owner, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.pool.Exec(ctx, query, c.ID, c.Tick, int64(c.Amount), c.Owner, c.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert chunk: %w", err)
	}
	return nil
}

// Replace atomically deletes the destroyed ids and inserts the created
// chunks in a single transaction.
func (s *ChunkStore) Replace(ctx context.Context, destroyed []string, created []*domain.Chunk) error {
	for _, c := range created {
		if c == nil || c.ID == "" {
			return storage.ErrInvalidInput
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin chunk replace: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, id := range destroyed {
		tag, err := tx.Exec(ctx, `DELETE FROM chunks WHERE chunk_id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete chunk %s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return storage.ErrNotFound
		}
	}

	for _, c := range created {
		_, err := tx.Exec(ctx,
			`INSERT INTO chunks (chunk_id, tick, amount, owner, created_at) VALUES ($1, $2, $3, $4, $5)`,
			c.ID, c.Tick, int64(c.Amount), c.Owner, c.CreatedAt,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert chunk %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit chunk replace: %w", err)
	}
	return nil
}

// Get retrieves a chunk by id. Returns ErrNotFound if not exists.
func (s *ChunkStore) Get(ctx context.Context, id string) (*domain.Chunk, error) {
	query := `
		SELECT chunk_id, tick, amount, owner, created_at
		FROM chunks
		WHERE chunk_id = $1
	`

	row := s.pool.QueryRow(ctx, query, id)
	c, err := scanChunk(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get chunk: %w", err)
	}
	return c, nil
}

// ListByOwner retrieves all chunks held by an address, ordered by id ASC.
// An empty tick matches every tick.
func (s *ChunkStore) ListByOwner(ctx context.Context, owner, tick string) ([]*domain.Chunk, error) {
	query := `
		SELECT chunk_id, tick, amount, owner, created_at
		FROM chunks
		WHERE owner = $1 AND ($2 = '' OR tick = $2)
		ORDER BY chunk_id ASC
	`

	rows, err := s.pool.Query(ctx, query, owner, tick)
	if err != nil {
		return nil, fmt.Errorf("list chunks by owner: %w", err)
	}
	defer rows.Close()

	return scanChunks(rows)
}

// ListAll retrieves every live chunk, ordered by id ASC.
func (s *ChunkStore) ListAll(ctx context.Context) ([]*domain.Chunk, error) {
	query := `
		SELECT chunk_id, tick, amount, owner, created_at
		FROM chunks
		ORDER BY chunk_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all chunks: %w", err)
	}
	defer rows.Close()

	return scanChunks(rows)
}

// scanChunk scans a single row into a Chunk.
func scanChunk(row pgx.Row) (*domain.Chunk, error) {
	var c domain.Chunk
	var amount int64

	err := row.Scan(&c.ID, &c.Tick, &amount, &c.Owner, &c.CreatedAt)
	if err != nil {
		return nil, err
	}

	c.Amount = uint64(amount)
	return &c, nil
}

// scanChunks scans multiple rows into a slice of Chunk.
func scanChunks(rows pgx.Rows) ([]*domain.Chunk, error) {
	var chunks []*domain.Chunk

	for rows.Next() {
		var c domain.Chunk
		var amount int64

		if err := rows.Scan(&c.ID, &c.Tick, &amount, &c.Owner, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chunk row: %w", err)
		}

		c.Amount = uint64(amount)
		chunks = append(chunks, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunk rows: %w", err)
	}

	return chunks, nil
}
