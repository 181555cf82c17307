package store

import "errors"

var (
	// ErrClientStateNotFound is returned when the client has not been
	// initialized.
	ErrClientStateNotFound = errors.New("client state not found")

	// ErrConsensusStateNotFound is returned when a store does not have the
	// requested consensus state.
	ErrConsensusStateNotFound = errors.New("consensus state not found")

	// ErrAuthoritySetNotFound is returned when a store does not have the
	// requested authority set.
	ErrAuthoritySetNotFound = errors.New("authority set not found")

	// ErrConsensusStateExists is returned when a changeset would overwrite a
	// stored consensus state.
	ErrConsensusStateExists = errors.New("consensus state already exists")

	// ErrAuthoritySetExists is returned when a changeset would replace a
	// stored authority set with a different one.
	ErrAuthoritySetExists = errors.New("authority set already exists")
)
