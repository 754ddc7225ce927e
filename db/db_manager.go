package db

import (
	"context"
	"log"

	"library-api/models"
)

// Operation represents a database operation that needs to be executed
type Operation struct {
	Execute func() error
	Result  chan error
}

// OperationWithResult represents a database operation that returns a result
type OperationWithResult struct {
	Execute func() (interface{}, error)
	Result  chan OperationResult
}

// OperationResult contains the result of an operation
type OperationResult struct {
	Data  interface{}
	Error error
}

// DBManager manages serialized access to the database. SQLite allows a
// single writer, and the borrow/return read-check-write sequences must not
// interleave, so all catalog mutations funnel through one worker.
type DBManager struct {
	opQueue       chan Operation
	resultOpQueue chan OperationWithResult
	stopping      chan struct{}
}

// NewDBManager creates a new database manager
func NewDBManager() *DBManager {
	m := &DBManager{
		opQueue:       make(chan Operation, 100),
		resultOpQueue: make(chan OperationWithResult, 100),
		stopping:      make(chan struct{}),
	}

	// Start the worker goroutine
	go m.worker()
	log.Println("Database access manager started")

	return m
}

// worker processes operations one at a time
func (m *DBManager) worker() {
	for {
		select {
		case op := <-m.opQueue:
			err := op.Execute()
			op.Result <- err
		case op := <-m.resultOpQueue:
			data, err := op.Execute()
			op.Result <- OperationResult{Data: data, Error: err}
		case <-m.stopping:
			return
		}
	}
}

// ExecuteOperation executes a database operation on the worker
func (m *DBManager) ExecuteOperation(execute func() error) error {
	resultChan := make(chan error, 1)
	m.opQueue <- Operation{
		Execute: execute,
		Result:  resultChan,
	}
	return <-resultChan
}

// ExecuteOperationWithResult executes a database operation that returns a result
func (m *DBManager) ExecuteOperationWithResult(execute func() (interface{}, error)) (interface{}, error) {
	resultChan := make(chan OperationResult, 1)
	m.resultOpQueue <- OperationWithResult{
		Execute: execute,
		Result:  resultChan,
	}
	result := <-resultChan
	return result.Data, result.Error
}

// Stop stops the database manager
func (m *DBManager) Stop() {
	close(m.stopping)
}

// Methods for specific repository operations

// SaveBook serializes access to book creation/updates
func (m *DBManager) SaveBook(repo BookRepository, ctx context.Context, book *models.Book) (*models.Book, error) {
	result, err := m.ExecuteOperationWithResult(func() (interface{}, error) {
		return repo.Save(ctx, book)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Book), nil
}

// DeleteBook serializes access to book deletion
func (m *DBManager) DeleteBook(repo BookRepository, ctx context.Context, id string) error {
	return m.ExecuteOperation(func() error {
		return repo.DeleteByID(ctx, id)
	})
}

// CreateUser serializes access to user creation
func (m *DBManager) CreateUser(repo UserRepository, ctx context.Context, user *models.User) (*models.User, error) {
	result, err := m.ExecuteOperationWithResult(func() (interface{}, error) {
		return repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.User), nil
}
