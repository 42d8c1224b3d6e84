package functions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mlql/mlql/internal/ir"
)

func TestDefaultRegistryResolvesBuiltins(t *testing.T) {
	r := Default()

	sig, ok := r.Resolve("mask", []ArgType{ArgType(ir.TypeString)})
	require.True(t, ok)
	require.Equal(t, Scalar, sig.Kind)

	_, ok = r.Resolve("mask", []ArgType{ArgType(ir.TypeInt64)})
	require.False(t, ok)

	sig, ok = r.Resolve("count", nil)
	require.True(t, ok)
	require.Equal(t, 0, sig.Arity())

	sig, ok = r.Resolve("count", []ArgType{ArgType(ir.TypeString)})
	require.True(t, ok)
	require.Equal(t, 1, sig.Arity())
}

func TestUnknownMatchesAnyCallSiteType(t *testing.T) {
	r := Default()
	sig, ok := r.Resolve("sum", []ArgType{ArgType(ir.TypeFloat64)})
	require.True(t, ok)
	require.Equal(t, Unknown, sig.Args[0])

	_, ok = r.Resolve("sum", []ArgType{ArgType(ir.TypeFloat64), ArgType(ir.TypeFloat64)})
	require.False(t, ok, "arity mismatch must not resolve")
}

func TestResolveOrErrorReportsMissingOverload(t *testing.T) {
	r := Default()
	_, err := r.ResolveOrError("does_not_exist", []ArgType{ArgType(ir.TypeString)})
	require.Error(t, err)
}

func TestRegisterAddsAdditionalOverload(t *testing.T) {
	r := Default()
	r.Register(Signature{Name: "mask", Kind: Scalar, Args: []ArgType{ArgType(ir.TypeInt64)}, Returns: ArgType(ir.TypeString)})

	sig, ok := r.Resolve("mask", []ArgType{ArgType(ir.TypeInt64)})
	require.True(t, ok)
	require.Equal(t, ArgType(ir.TypeInt64), sig.Args[0])
}

func TestDefaultVersion(t *testing.T) {
	require.Equal(t, Version, Default().Version())
}
