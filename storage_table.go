package silo

import (
	"github.com/TheBitDrifter/table"
	"github.com/rotisserie/eris"
)

// TableStorage backs a column with a single-element table. Rows stay packed:
// deleting a row moves the table's last row into the gap, and rows tracks
// which entity sits in each row so the moved entity can be patched.
type TableStorage[T any] struct {
	tbl      table.Table
	accessor table.Accessor[T]
	rows     []Entity
	index    map[Entity]int
}

func newTableStorage[T any]() *TableStorage[T] {
	elementType := table.FactoryNewElementType[T]()
	schema := table.Factory.NewSchema()
	schema.Register(elementType)
	tbl, err := table.NewTableBuilder().
		WithSchema(schema).
		WithEntryIndex(table.Factory.NewEntryIndex()).
		WithElementTypes(elementType).
		WithEvents(Config.tableEvents).
		Build()
	if err != nil {
		panic(eris.Wrap(err, "failed to build column table"))
	}
	return &TableStorage[T]{
		tbl:      tbl,
		accessor: table.FactoryNewAccessor[T](elementType),
		index:    make(map[Entity]int),
	}
}

func (s *TableStorage[T]) Get(en Entity) *T {
	return s.accessor.Get(s.index[en], s.tbl)
}

func (s *TableStorage[T]) Insert(en Entity, v T) {
	if _, err := s.tbl.NewEntries(1); err != nil {
		panic(eris.Wrapf(err, "failed to allocate row for entity %d", en))
	}
	row := len(s.rows)
	s.rows = append(s.rows, en)
	s.index[en] = row
	*s.accessor.Get(row, s.tbl) = v
}

func (s *TableStorage[T]) Remove(en Entity) T {
	row := s.index[en]
	v := *s.accessor.Get(row, s.tbl)
	if _, err := s.tbl.DeleteEntries(row); err != nil {
		panic(eris.Wrapf(err, "failed to delete row for entity %d", en))
	}
	last := len(s.rows) - 1
	if row != last {
		moved := s.rows[last]
		s.rows[row] = moved
		s.index[moved] = row
	}
	s.rows = s.rows[:last]
	delete(s.index, en)
	return v
}

// Len reports the number of rows held by the backing table.
func (s *TableStorage[T]) Len() int {
	return s.tbl.Length()
}
