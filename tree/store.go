package tree

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

/*
EncodeDecoder is an interface for objects
that allow encoding models into slices of
bytes and decoding them back to models.
*/
type EncodeDecoder interface {

	//Encode receives a *Model
	//and returns a slice of bytes with the model
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*Model) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *Model decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*Model, error)
}

/*
ModelStore is an interface to manage a store
where models can be saved and loaded back.

All it methods take a context that may allow
cancelling the operation (thus forcing the return
of an error) if the implementation allows it.

Errors returned by Save and Load are always
*PersistenceError values.
*/
type ModelStore interface {
	// Save takes a model and a destination and stores
	// the model at the destination, replacing whatever
	// was stored there. The meaning of the destination
	// depends on the implementation: a file path, a key...
	Save(ctx context.Context, m *Model, destination string) error
	// Load takes a source and returns the model stored
	// at it, structurally equal to the one saved there.
	Load(ctx context.Context, source string) (*Model, error)
	// Close closes the store, implementations should
	// free any resources in use (unless the context
	// expires). It returns an error if the Close cannot
	// be completed.
	Close(ctx context.Context) error
}

// StoreError represents an error related with model stores
type StoreError string

/*
ErrModelNotFound is the error wrapped by the *PersistenceError returned
by a ModelStore's Load method when nothing is stored at the source.
*/
const ErrModelNotFound = StoreError("no model stored at location")

func (se StoreError) Error() string {
	return string(se)
}

/*
PersistenceError is the error returned when a model cannot be saved to
or loaded from a location, either because of a failure of the underlying
storage or because the stored data cannot be decoded into a model.
*/
type PersistenceError struct {
	// Op is either "save" or "load"
	Op       string
	Location string
	Err      error
}

func (pe *PersistenceError) Error() string {
	return fmt.Sprintf("%s model at %s: %v", pe.Op, pe.Location, pe.Err)
}

func (pe *PersistenceError) Unwrap() error {
	return pe.Err
}

type memoryModelStore struct {
	models map[string][]byte
	lock   sync.RWMutex
	encdec EncodeDecoder
}

/*
NewMemoryStore takes an EncodeDecoder and returns an implementation of
ModelStore with the process memory space as underlying backend. Models
are kept encoded, so a loaded model never shares nodes with the saved
one.
*/
func NewMemoryStore(encdec EncodeDecoder) ModelStore {
	return &memoryModelStore{
		models: make(map[string][]byte),
		encdec: encdec,
	}
}

func (mms *memoryModelStore) Save(ctx context.Context, m *Model, destination string) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{"save", destination, err}
	}
	data, err := mms.encdec.Encode(m)
	if err != nil {
		return &PersistenceError{"save", destination, err}
	}
	mms.lock.Lock()
	defer mms.lock.Unlock()
	mms.models[destination] = data
	return nil
}

func (mms *memoryModelStore) Load(ctx context.Context, source string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PersistenceError{"load", source, err}
	}
	mms.lock.RLock()
	data, ok := mms.models[source]
	mms.lock.RUnlock()
	if !ok {
		return nil, &PersistenceError{"load", source, ErrModelNotFound}
	}
	m, err := mms.encdec.Decode(data)
	if err != nil {
		return nil, &PersistenceError{"load", source, err}
	}
	return m, nil
}

func (mms *memoryModelStore) Close(ctx context.Context) error {
	return nil
}

type fileModelStore struct {
	encdec EncodeDecoder
}

/*
NewFileStore takes an EncodeDecoder and returns an implementation of
ModelStore that keeps every model in its own file. Destinations and
sources are file paths.

The model is encoded before the destination file is created, so a
model that cannot be encoded never leaves a partial file behind.
*/
func NewFileStore(encdec EncodeDecoder) ModelStore {
	return &fileModelStore{encdec}
}

func (fms *fileModelStore) Save(ctx context.Context, m *Model, destination string) error {
	err := fms.save(ctx, m, destination)
	if err != nil {
		return &PersistenceError{"save", destination, err}
	}
	return nil
}

func (fms *fileModelStore) save(ctx context.Context, m *Model, destination string) (e error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := fms.encdec.Encode(m)
	if err != nil {
		return err
	}
	f, err := os.Create(destination)
	if err != nil {
		return err
	}
	defer func() {
		err := f.Close()
		if e == nil {
			e = err
		}
	}()
	_, err = f.Write(data)
	return err
}

func (fms *fileModelStore) Load(ctx context.Context, source string) (*Model, error) {
	m, err := fms.load(ctx, source)
	if err != nil {
		return nil, &PersistenceError{"load", source, err}
	}
	return m, nil
}

func (fms *fileModelStore) load(ctx context.Context, source string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %v", ErrModelNotFound, err)
		}
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return fms.encdec.Decode(data)
}

func (fms *fileModelStore) Close(ctx context.Context) error {
	return nil
}
