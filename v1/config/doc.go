// Package config loads the YAML configuration shared by the roovector
// components.
//
// Values of the form ${NAME} are replaced with environment variables before
// the document is parsed, so secrets such as the database password do not
// have to live in the file:
//
//	postgres:
//	  connection:
//	    host: localhost
//	    port: "5432"
//	    user: app
//	    password: ${PGPASSWORD}
//	    dbname: search
//	  pool:
//	    max_open_conns: 20
//	registration:
//	  schema: vectors
//
// The Postgres section is also the input of pgxvector.NewPool,
// pqvector.Open and postgres.NewPostgres.
package config
