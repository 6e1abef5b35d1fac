package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/ycaihua/paasta/numacl"
)

// Binary to inspect and maintain the NUMA placement ledger
func main() {
	client, err := numacl.NewSimpleCLIClient()
	if err != nil {
		log.Fatal("error creating numacl client ", err)
	}
	if err := client.Exec(); err != nil {
		log.Fatal("error running numacl ", err)
	}
}
