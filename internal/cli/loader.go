package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/shapepath/internal/jsonpath"
	"github.com/roach88/shapepath/internal/querydoc"
	"github.com/roach88/shapepath/internal/shape"
)

// LoadResult contains a record definition loaded from a schema directory.
type LoadResult struct {
	Definition string
	Record     *shape.RecordShape
	Root       *jsonpath.Struct
	CUEValue   cue.Value // The raw CUE value for additional processing
	FileCount  int       // Number of CUE files found
}

// LoadError represents an error that occurred during schema loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSchema loads the CUE package in dir and converts definition (e.g.
// "#Order") into a record shape and its accessor tree.
func LoadSchema(dir, definition string) (*LoadResult, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("schema directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing schema directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	definition = normalizeDefinition(definition)
	def := value.LookupPath(cue.ParsePath(definition))
	if !def.Exists() {
		return nil, &LoadError{Code: ErrCodeDefinitionNotFound, Message: fmt.Sprintf("definition %s not found in %s", definition, dir)}
	}

	s, err := shape.FromCUE(def)
	if err != nil {
		return nil, convertSchemaError(err)
	}
	record, ok := s.(*shape.RecordShape)
	if !ok {
		return nil, &LoadError{
			Code:    ErrCodeNotRecord,
			Message: fmt.Sprintf("definition %s is a %s, not a record", definition, s),
			Pos:     def.Pos(),
		}
	}

	root, err := jsonpath.OfRecord(record)
	if err != nil {
		return nil, &LoadError{Code: MapErrorToCode(err), Message: err.Error(), Pos: def.Pos()}
	}

	return &LoadResult{
		Definition: definition,
		Record:     record,
		Root:       root,
		CUEValue:   value,
		FileCount:  len(cueFiles),
	}, nil
}

// normalizeDefinition accepts "Order" as shorthand for "#Order".
func normalizeDefinition(name string) string {
	if strings.HasPrefix(name, "#") || strings.Contains(name, ".") {
		return name
	}
	return "#" + name
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// convertSchemaError converts a shape conversion error to a LoadError with
// position info.
func convertSchemaError(err error) *LoadError {
	var schemaErr *shape.SchemaError
	if errors.As(err, &schemaErr) {
		message := schemaErr.Message
		if schemaErr.Path != "" {
			message = schemaErr.Path + ": " + message
		}
		return &LoadError{
			Code:    ErrCodeUnsupportedSchema,
			Message: message,
			Pos:     schemaErr.Pos,
		}
	}
	return &LoadError{Code: ErrCodeUnsupportedSchema, Message: err.Error()}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File write error

	// Schema errors
	ErrCodeDefinitionNotFound = "E101" // Definition missing from the CUE package
	ErrCodeUnsupportedSchema  = "E102" // CUE type has no shape equivalent
	ErrCodeNotRecord          = "E103" // Definition is not a struct

	// Query errors
	ErrCodeInvalidDocument   = "E110" // Malformed query document
	ErrCodeTypeMismatch      = "E111" // Operand family disagrees with the accessor
	ErrCodeInvalidKey        = "E112" // Unknown field, negative index, empty key
	ErrCodeInvalidExpression = "E113" // Malformed expression tree
	ErrCodeUnsupportedShape  = "E114" // Shape kind without an accessor
)

// MapErrorToCode maps a query or schema error to an error code.
func MapErrorToCode(err error) string {
	var loadErr *LoadError
	switch {
	case errors.As(err, &loadErr):
		return loadErr.Code
	case errors.Is(err, querydoc.ErrInvalidDocument):
		return ErrCodeInvalidDocument
	case errors.Is(err, jsonpath.ErrTypeMismatch):
		return ErrCodeTypeMismatch
	case errors.Is(err, jsonpath.ErrInvalidKey):
		return ErrCodeInvalidKey
	case errors.Is(err, jsonpath.ErrInvalidExpression):
		return ErrCodeInvalidExpression
	case errors.Is(err, jsonpath.ErrUnsupportedShapeKind):
		return ErrCodeUnsupportedShape
	default:
		return ErrCodeGeneric
	}
}
