package walker_test

import (
	"fmt"

	"github.com/erraggy/oasfilter/jsonvalue"
	"github.com/erraggy/oasfilter/parser"
	"github.com/erraggy/oasfilter/walker"
)

func Example() {
	result, err := parser.ParseWithOptions(parser.WithBytes([]byte(`{
  "openapi": "3.0.3",
  "info": {"title": "Pets", "version": "1"},
  "paths": {
    "/pets": {
      "get": {
        "responses": {
          "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Pet"}}}}
        }
      }
    }
  },
  "components": {"schemas": {"Pet": {"type": "object"}}}
}`)))
	if err != nil {
		fmt.Println(err)
		return
	}

	_ = walker.Walk(result,
		walker.WithOperationHandler(func(wc *walker.WalkContext, _ *jsonvalue.Object) walker.Action {
			fmt.Println("operation:", wc.Method, wc.PathTemplate)
			return walker.Continue
		}),
		walker.WithRefHandler(func(wc *walker.WalkContext, ref *walker.RefInfo) walker.Action {
			fmt.Println("ref:", ref.Bucket, ref.Name, "in", wc.StatusCode)
			return walker.SkipChildren
		}),
	)
	// Output:
	// operation: get /pets
	// ref: schemas Pet in 200
}
