package mainfuncs

import (
	"github.com/rs/zerolog"

	"github.com/dontcallmebro/BQL-APP/api"
	db "github.com/dontcallmebro/BQL-APP/db/sqlc"
	"github.com/dontcallmebro/BQL-APP/util"
)

// Serve opens the database and runs the HTTP API until it fails.
func Serve(config util.Config, log zerolog.Logger) error {
	conn, err := openDB(config)
	if err != nil {
		return err
	}
	defer conn.Close()

	server := api.NewServer(db.NewStore(conn), config.Beta, log)
	return server.Start(config.ServerAddress)
}
