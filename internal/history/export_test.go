package history

import "context"

// BumpVersionForTest rewrites the recorded schema version.
func (s *Store) BumpVersionForTest(ctx context.Context, version int) error {
	_, err := s.db.ExecContext(ctx, "UPDATE schema_version SET version = ?", version)
	return err
}
