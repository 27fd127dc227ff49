package xmlparts

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidKey    = errors.New("xmlparts: invalid key")
	ErrMultipleParts = errors.New("xmlparts: multiple parts for namespace")
	ErrHost          = errors.New("xmlparts: host operation failed")
)

// wrapperTag is the container element every stored value is wrapped in:
// <customData xmlns="{namespace}">...</customData>.
const wrapperTag = "customData"

// MultiplePartsError reports that the host returned more than one part for a
// namespace. The library only ever creates one part per namespace, so this
// signals broken document state and is never resolved by picking one.
type MultiplePartsError struct {
	Namespace string
	Count     int
}

func (e *MultiplePartsError) Error() string {
	return fmt.Sprintf("xmlparts: found %d parts for namespace %q, expected at most one", e.Count, e.Namespace)
}

func (e *MultiplePartsError) Is(target error) bool { return target == ErrMultipleParts }

// HostError wraps a failure reported by the host document for a single
// list/add/read/delete call. Op names the failing call.
type HostError struct {
	Op  string
	Err error
}

func (e *HostError) Error() string {
	return fmt.Sprintf("xmlparts: host %s failed: %v", e.Op, e.Err)
}

func (e *HostError) Unwrap() error { return e.Err }

func (e *HostError) Is(target error) bool { return target == ErrHost }

// Part is an opaque handle to a custom XML part owned by the host document.
// The library never constructs parts itself; it only receives handles from
// Host.ListParts and asks them to read or delete themselves.
type Part interface {
	// Namespace returns the namespace the part is stored under.
	Namespace() string

	// XML returns the raw XML text of the part.
	XML(ctx context.Context) (string, error)

	// Delete removes the part from the host document. The handle is dead
	// afterwards.
	Delete(ctx context.Context) error
}

// Host describes the document's custom XML part storage.
// Implementations must be safe for concurrent use.
type Host interface {
	// ListParts returns every part stored under the namespace, in storage
	// order. An empty result is not an error.
	ListParts(ctx context.Context, namespace string) ([]Part, error)

	// AddPart stores a new part whose content is the given XML document.
	// The part's namespace is taken from the root element's xmlns.
	AddPart(ctx context.Context, xml string) error
}

// Codec converts values to XML fragments and XML text back to values.
// The store treats it as a black box apart from the customData wrapper it
// adds around Build output.
type Codec interface {
	// Build serializes value to an XML fragment (no document wrapper).
	Build(value any) (string, error)

	// Parse converts XML text back into a generic map.
	Parse(xmlText string) (map[string]any, error)
}

// Option customizes Store behavior.
type Option[TKey ~string] func(*store[TKey])

// WithHost specifies the host document backend.
// If not provided, NewMemoryHost() will be used.
func WithHost[TKey ~string](h Host) Option[TKey] {
	return func(s *store[TKey]) {
		if h != nil {
			s.host = h
		}
	}
}

// WithCodec specifies the XML codec used to serialize values.
// If not provided, the mxj-backed codec is used.
func WithCodec[TKey ~string](c Codec) Option[TKey] {
	return func(s *store[TKey]) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithLogger specifies a logger for operation logging.
// If not provided, a no-op logger is used (no logging).
func WithLogger[TKey ~string](logger Logger) Option[TKey] {
	return func(s *store[TKey]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLogTag sets a tag prefix for all log messages.
// Useful for identifying the source of logs in multi-store scenarios.
func WithLogTag[TKey ~string](tag string) Option[TKey] {
	return func(s *store[TKey]) {
		s.logTag = tag
	}
}

// Store persists values in a document's custom XML parts, one part per key.
// Keys are reduced to namespaces (see Namespace); keys that sanitize to the
// same namespace address the same stored part.
type Store[TKey ~string] interface {
	// Set stores value under key, replacing any existing part for the
	// key's namespace. Replacement is delete-then-add; if Set fails the
	// end state is uncertain and the caller should retry the whole call.
	Set(ctx context.Context, key TKey, value any) error

	// GetPart returns the part handle stored for key, or nil when none
	// exists.
	GetPart(ctx context.Context, key TKey) (Part, error)

	// GetValue returns the parsed value stored for key, or nil when none
	// exists.
	GetValue(ctx context.Context, key TKey) (any, error)

	// Remove deletes the part stored for key. Removing an absent key is a
	// no-op success.
	Remove(ctx context.Context, key TKey) error
}

type store[TKey ~string] struct {
	host   Host
	codec  Codec
	logger Logger
	logTag string
}

// New creates a Store over a host document.
// If no host is provided via WithHost, NewMemoryHost() is used.
// If no codec is provided via WithCodec, NewCodec() is used.
// If no logger is provided via WithLogger, a no-op logger is used (no logging).
func New[TKey ~string](opts ...Option[TKey]) Store[TKey] {
	s := &store[TKey]{
		host:   NewMemoryHost(), // Default to in-memory
		codec:  NewCodec(),      // Default to mxj
		logger: defaultLogger,   // Default to no-op
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *store[TKey]) logf(level string, ctx context.Context, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if s.logTag != "" {
		msg = s.logTag + " " + msg
	}
	switch level {
	case "info":
		s.logger.Info(ctx, msg)
	case "warn":
		s.logger.Warn(ctx, msg)
	case "error":
		s.logger.Error(ctx, msg)
	case "debug":
		s.logger.Debug(ctx, msg)
	}
}

// findPart locates the single part stored under namespace.
// Zero parts is (nil, nil); more than one trips MultiplePartsError.
func (s *store[TKey]) findPart(ctx context.Context, namespace string) (Part, error) {
	parts, err := s.host.ListParts(ctx, namespace)
	if err != nil {
		he := &HostError{Op: "list", Err: err}
		s.logf("error", ctx, "ListParts %s failed: %v", namespace, err)
		return nil, he
	}

	switch len(parts) {
	case 0:
		return nil, nil
	case 1:
		return parts[0], nil
	default:
		me := &MultiplePartsError{Namespace: namespace, Count: len(parts)}
		s.logf("error", ctx, "ListParts %s: %v", namespace, me)
		return nil, me
	}
}

func (s *store[TKey]) Set(ctx context.Context, key TKey, value any) error {
	// Serialize before validating the key; build failures surface first.
	fragment, err := s.codec.Build(value)
	if err != nil {
		s.logf("error", ctx, "Set %s: build value failed: %v", key, err)
		return fmt.Errorf("xmlparts: build value: %w", err)
	}

	namespace, err := Namespace(string(key))
	if err != nil {
		return err
	}

	existing, err := s.findPart(ctx, namespace)
	if err != nil {
		return err
	}

	// The host has no in-place update, only add and delete.
	if existing != nil {
		if err := existing.Delete(ctx); err != nil {
			he := &HostError{Op: "delete", Err: err}
			s.logf("error", ctx, "Set %s: delete existing part failed: %v", key, err)
			return he
		}
	}

	body := fmt.Sprintf("<%s xmlns=%q>%s</%s>", wrapperTag, namespace, fragment, wrapperTag)
	if err := s.host.AddPart(ctx, body); err != nil {
		he := &HostError{Op: "add", Err: err}
		s.logf("error", ctx, "Set %s: add part failed: %v", key, err)
		return he
	}

	return nil
}

func (s *store[TKey]) GetPart(ctx context.Context, key TKey) (Part, error) {
	namespace, err := Namespace(string(key))
	if err != nil {
		return nil, err
	}
	return s.findPart(ctx, namespace)
}

func (s *store[TKey]) GetValue(ctx context.Context, key TKey) (any, error) {
	part, err := s.GetPart(ctx, key)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, nil
	}

	text, err := part.XML(ctx)
	if err != nil {
		he := &HostError{Op: "read", Err: err}
		s.logf("error", ctx, "GetValue %s: read part failed: %v", key, err)
		return nil, he
	}

	parsed, err := s.codec.Parse(text)
	if err != nil {
		s.logf("error", ctx, "GetValue %s: parse part failed: %v", key, err)
		return nil, fmt.Errorf("xmlparts: parse part: %w", err)
	}

	inner, ok := parsed[wrapperTag]
	if !ok {
		// Part was stored without the wrapper; hand back the raw parse.
		return parsed, nil
	}
	if m, ok := inner.(map[string]any); ok {
		delete(m, attrPrefix+"xmlns")
		delete(m, "xmlns")
		return m, nil
	}
	return inner, nil
}

func (s *store[TKey]) Remove(ctx context.Context, key TKey) error {
	namespace, err := Namespace(string(key))
	if err != nil {
		return err
	}

	part, err := s.findPart(ctx, namespace)
	if err != nil {
		return err
	}
	if part == nil {
		// Removing something absent is not an error.
		return nil
	}

	if err := part.Delete(ctx); err != nil {
		he := &HostError{Op: "delete", Err: err}
		s.logf("error", ctx, "Remove %s failed: %v", key, err)
		return he
	}

	return nil
}
