// Package source resolves where the component catalog lives on disk.
//
// A catalog root is either a local directory (LocalSource) or a git
// remote cloned into the user's data directory (GitSource). Both
// implement Source and resolve to an absolute local path that the loader
// scans:
//
//	src := source.New(cfg.ComponentsDir, cfg.Git)
//	root, err := src.Prepare(ctx, logger)
//	if err != nil { /* handle error */ }
//	loader.New(loader.Options{ComponentsDir: root}, logger)
//
// GitSource behavior:
//   - Clones on first use, fetches and resets on later runs
//   - Tries anonymous access first and falls back to the token kept in the
//     OS credential store (see CredentialManager)
//   - Refuses to touch a clone directory holding other content
//   - Leaves a working tree with local changes alone
//
// Remote URLs may be HTTPS, SSH (git@host:owner/repo, rewritten to HTTPS),
// or a local path / file:// URL, which is used as-is.
package source
