package config

import (
	dbm "github.com/tendermint/tm-db"
)

// DBContext specifies config information for loading a new DB.
type DBContext struct {
	ID     string
	Config *Config
	Chain  *ChainConfig
}

// DefaultDBProvider returns a database using the DBBackend of the chain,
// stored in the data directory of the Config.
func DefaultDBProvider(ctx *DBContext) (dbm.DB, error) {
	dbType := dbm.BackendType(ctx.Chain.DBBackend)

	return dbm.NewDB(ctx.ID, dbType, ctx.Config.DataDir())
}
