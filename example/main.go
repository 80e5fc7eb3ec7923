// Command example serves the users schema at http://localhost:8080/graphql.
package main

import (
	"log"
	"net/http"

	"go.appointy.com/quill"
	"go.appointy.com/quill/example/users"
)

func main() {
	server := users.NewServer()
	http.Handle("/graphql", quill.HTTPHandler(users.Schema(server)))

	log.Println("serving graphql at :8080/graphql")
	log.Fatal(http.ListenAndServe(":8080", nil))
}
