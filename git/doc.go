// Package git is a narrow facade over go-git for gitspace.
//
// It clones and inspects repositories through the project's filesystem
// abstraction, so the same code runs against the OS or an in-memory tree.
//
// # Cloning
//
//	repo, err := git.Clone(ctx, "git@github.com:acme/widgets", &git.Options{
//	    FS:      billyfs.NewBaseOSFS(),
//	    Workdir: "/home/me/.space/repositories/acme/widgets",
//	    Auth:    git.NewSSHKeyAuth("/home/me/.ssh/id_rsa"),
//	})
//
// Transport failures come back wrapping one of ErrAuthRequired,
// ErrAuthFailed, ErrRemoteNotFound or ErrNetwork. A canceled or expired
// context is reported as the context's own error.
//
// # Credentials
//
// SSHKeyAuth reads an unencrypted private key file. The username is taken
// from the remote URL ("git" in git@host:ns/project). Host keys are checked
// with WithKnownHosts, or go-git's default known_hosts lookup otherwise.
//
// # Inspection
//
// Open an existing checkout and query it:
//
//	repo, err := git.Open(ctx, &git.Options{FS: fsys, Workdir: dir})
//	head, err := repo.Head(ctx)
//	branch, err := repo.CurrentBranch(ctx)
//	url, err := repo.RemoteURL("")
package git
