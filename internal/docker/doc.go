// Package docker wraps the Docker Engine SDK for the containerized run
// path: verifying daemon connectivity for `primer doctor`, starting the
// server image with the negotiated ports published, and discovering
// previously started server containers through their labels. Labels are
// the only persistence mechanism — there is no state file.
package docker
