package filter_test

import (
	"fmt"
	"log"

	"github.com/erraggy/oasfilter/filter"
	"github.com/erraggy/oasfilter/internal/testutil"
	"github.com/erraggy/oasfilter/jsonvalue"
	"github.com/erraggy/oasfilter/parser"
)

func ExampleFilterWithOptions() {
	result, err := filter.FilterWithOptions(
		filter.WithBytes([]byte(testutil.ScenarioAPI)),
		filter.WithSourceName("users.json"),
		filter.WithSelectors("GET /users"),
	)
	if err != nil {
		log.Fatal(err)
	}

	for _, ep := range result.Selected() {
		fmt.Println("endpoint:", ep)
	}
	fmt.Println("schemas:", result.Closure.Names(filter.BucketSchemas))
	fmt.Println("output:", result.OutputFileNameFor(parser.SourceFormatYAML))
	// Output:
	// endpoint: GET /users
	// schemas: [User]
	// output: filtered-users.yaml
}

func ExampleExtractEndpoints() {
	v, err := jsonvalue.DecodeYAML([]byte(testutil.PetstoreYAML))
	if err != nil {
		log.Fatal(err)
	}
	doc, _ := jsonvalue.AsObject(v)

	endpoints, err := filter.ExtractEndpoints(doc)
	if err != nil {
		log.Fatal(err)
	}
	for _, ep := range endpoints {
		fmt.Printf("%-6s %-15s %s\n", ep.Method, ep.Path, ep.OperationID)
	}
	// Output:
	// GET    /pets           listPets
	// GET    /pets/{petId}   showPetById
	// DELETE /pets/{petId}   deletePet
}

func ExampleCollectReferences() {
	v, err := jsonvalue.DecodeJSON([]byte(testutil.UsersAPI))
	if err != nil {
		log.Fatal(err)
	}
	doc, _ := jsonvalue.AsObject(v)

	endpoints, err := filter.ExtractEndpoints(doc)
	if err != nil {
		log.Fatal(err)
	}
	ep, ok := filter.FindEndpoint(endpoints, "get", "/users")
	if !ok {
		log.Fatal("GET /users not found")
	}

	closure, err := filter.CollectReferences(doc, []*filter.Endpoint{ep})
	if err != nil {
		log.Fatal(err)
	}
	for _, name := range closure.Visited() {
		fmt.Println(name)
	}
	// Output:
	// responses/UserList
	// headers/RateLimit
	// schemas/User
	// schemas/Address
	// parameters/TraceID
}

func ExampleParseSelector() {
	for _, s := range []string{"all", "post /users", "tag:billing", "path:/users/**", "ext:x-public+!x-internal"} {
		sel, err := filter.ParseSelector(s)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%-8s %s\n", sel.Kind, sel)
	}
	// Output:
	// all      all
	// endpoint POST /users
	// tag      tag:billing
	// path     path:/users/**
	// ext      ext:x-public+!x-internal
}
