package parser_test

import (
	"errors"
	"fmt"

	"github.com/erraggy/oasfilter/oaserrors"
	"github.com/erraggy/oasfilter/parser"
)

func ExampleParseWithOptions() {
	spec := []byte(`{
  "openapi": "3.0.3",
  "info": {"title": "Example", "version": "1.0.0"},
  "paths": {"/ping": {"get": {"responses": {"200": {"description": "pong"}}}}}
}`)

	result, err := parser.ParseWithOptions(
		parser.WithBytes(spec),
		parser.WithSourceName("ping.json"),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(result.SourcePath, result.SourceFormat, result.Version)
	fmt.Println("operations:", result.Stats.OperationCount)
	// Output:
	// ping.json json 3.0.3
	// operations: 1
}

func ExampleCheckStructure() {
	_, err := parser.ParseWithOptions(parser.WithBytes([]byte(`openapi: 3.1.0`)))
	fmt.Println(errors.Is(err, oaserrors.ErrMalformed))
	fmt.Println(err)
	// Output:
	// true
	// malformed specification in ParseBytes.yaml: missing 'paths'
}
