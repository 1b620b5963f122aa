package database

// DataStore defines the unified interface for all data operations needed by
// the service layer. It is composed of smaller, domain-specific interfaces;
// consumers can depend on the smaller ones (e.g., CardRepository,
// ColumnRepository) for better testability and clearer dependencies.
type DataStore interface {
	UserRepository
	ColumnRepository
	CardRepository
	ArchiveRepository
}
