package silo

type factory struct{}

var Factory factory

func (f factory) NewWorld(opts ...WorldOption) *World {
	return newWorld(opts...)
}

func (f factory) NewResources() *Resources {
	return newResources()
}

func (f factory) NewEntityRegistry() *EntityRegistry {
	r := newEntityRegistry()
	return &r
}

func (f factory) NewComponentRegistry() *ComponentRegistry {
	r := newComponentRegistry()
	return &r
}

func (f factory) NewAspectIndex() *AspectIndex {
	idx := newAspectIndex()
	return &idx
}

func (f factory) NewJoin(terms ...Term) *Join {
	return newJoin(terms...)
}

func FactoryNewMaskedStorage[T any](raw RawStorage[T]) *MaskedStorage[T] {
	return newMaskedStorage(raw)
}

// FactoryNewStorage returns an empty column backed by the given strategy.
func FactoryNewStorage[T any](s Strategy) *MaskedStorage[T] {
	return newMaskedStorage(newRawStorage[T](s))
}

func FactoryNewVecStorage[T any]() *VecStorage[T] {
	return newVecStorage[T](Config.vecChunkSize)
}

func FactoryNewSparseStorage[T any]() *SparseStorage[T] {
	return newSparseStorage[T]()
}

func FactoryNewTableStorage[T any]() *TableStorage[T] {
	return newTableStorage[T]()
}
