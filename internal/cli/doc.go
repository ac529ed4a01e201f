// Package cli is the interactive front end of cvmaster: account
// registration and login, the résumé archive, and the admin console
// (licenses, accounts, credits, backups) for allow-listed operators.
//
// All state lives in the local store; the CLI never talks to the
// operator gRPC server.
package cli
