// Package envfile writes and verifies the downstream server's .env
// secrets file.
//
// The file is a flat, ordered KEY=VALUE text file: the first line is
// always the required API credential, followed by commented-out optional
// keys that serve purely as documentation. The file is overwritten
// wholesale on every run — it is never merged with a pre-existing file.
//
// Verification reads the file back with github.com/joho/godotenv, the
// same parser the downstream tooling ecosystem uses, so primer confirms
// it wrote something the server will actually accept.
package envfile
