package repositories

import (
	"context"
	"fmt"
)

// Store groups the repositories that share one connection or transaction.
type Store interface {
	Users() UserRepository
	Roles() RoleRepository
	Organizations() OrganizationRepository
	BarStations() BarStationRepository
	Categories() CategoryRepository

	// InTx runs fn against a Store bound to a single transaction. The
	// transaction is committed when fn returns nil and rolled back otherwise.
	InTx(ctx context.Context, fn func(tx Store) error) error
}

type pgStore struct {
	conn          Conn
	users         UserRepository
	roles         RoleRepository
	organizations OrganizationRepository
	barStations   BarStationRepository
	categories    CategoryRepository
}

func NewStore(conn Conn) Store {
	return &pgStore{
		conn:          conn,
		users:         NewUserRepo(conn),
		roles:         NewRoleRepo(conn),
		organizations: NewOrganizationRepo(conn),
		barStations:   NewBarStationRepo(conn),
		categories:    NewCategoryRepo(conn),
	}
}

func (s *pgStore) Users() UserRepository                 { return s.users }
func (s *pgStore) Roles() RoleRepository                 { return s.roles }
func (s *pgStore) Organizations() OrganizationRepository { return s.organizations }
func (s *pgStore) BarStations() BarStationRepository     { return s.barStations }
func (s *pgStore) Categories() CategoryRepository        { return s.categories }

func (s *pgStore) InTx(ctx context.Context, fn func(tx Store) error) (err error) {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(NewStore(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
