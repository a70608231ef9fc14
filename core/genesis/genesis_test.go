package genesis

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/Siasom1/shinde-chain/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sudoAddress = "5E2dY5eu1fz1AyyBnG9NSwpWtAxRhve8Q88aDrfu6DwHQQii"

var testCode = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func shindeSupply() *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(12), nil)
	return new(big.Int).Mul(big.NewInt(589_552_695_333_683), scale)
}

func sudoID(t *testing.T) account.ID {
	t.Helper()
	id, _, err := account.Decode(sudoAddress)
	require.NoError(t, err)
	return id
}

func TestBuildShindeGenesis(t *testing.T) {
	sudo := sudoID(t)

	st, err := Build(testCode, shindeSupply(), sudo)
	require.NoError(t, err)

	require.Len(t, st.Balances, 1)
	assert.Equal(t, sudo, st.Balances[0].Account)
	assert.Equal(t, "589552695333683000000000000", st.Balances[0].Amount.String())

	require.NotNil(t, st.Sudo)
	assert.Equal(t, sudo, *st.Sudo)
	assert.Equal(t, []account.ID{sudo}, st.Authorities())
	assert.Equal(t, testCode, []byte(st.Code))
}

func TestBuildConservesSupply(t *testing.T) {
	for _, seed := range []string{"Alice", "Bob", "Charlie"} {
		id := account.MustFromSeed(seed)
		st, err := Build(testCode, shindeSupply(), id)
		require.NoError(t, err)
		assert.Equal(t, 0, st.TotalIssuance().Cmp(shindeSupply()), seed)
		assert.Len(t, st.Authorities(), 1)
	}
}

func TestBuildMissingCode(t *testing.T) {
	_, err := Build(nil, shindeSupply(), sudoID(t))
	assert.ErrorIs(t, err, ErrMissingRuntimeCode)

	_, err = Build([]byte{}, shindeSupply(), sudoID(t))
	assert.ErrorIs(t, err, ErrMissingRuntimeCode)
}

func TestBuildInvalidSupply(t *testing.T) {
	_, err := Build(testCode, nil, sudoID(t))
	assert.ErrorIs(t, err, ErrInvalidSupply)

	_, err = Build(testCode, big.NewInt(0), sudoID(t))
	assert.ErrorIs(t, err, ErrInvalidSupply)
}

func TestBuildFromDescriptorAllocations(t *testing.T) {
	alice := account.MustFromSeed("Alice")
	bob := account.MustFromSeed("Bob")
	supply := shindeSupply()
	third := new(big.Int).Div(supply, big.NewInt(3))

	d := Descriptor{
		Code:      testCode,
		Supply:    supply,
		Authority: alice,
		Allocations: []Allocation{
			{Account: alice, Amount: third},
			{Account: bob, Amount: new(big.Int).Sub(supply, third)},
		},
	}
	st, err := BuildFromDescriptor(d)
	require.NoError(t, err)

	assert.Len(t, st.Balances, 2)
	assert.Equal(t, 0, st.TotalIssuance().Cmp(supply))
	assert.Equal(t, 0, st.Balance(alice).Cmp(third))
	assert.Equal(t, []account.ID{alice}, st.Authorities())
	assert.Equal(t, 0, st.Balance(account.MustFromSeed("Eve")).Sign())
}

func TestBuildFromDescriptorErrors(t *testing.T) {
	alice := account.MustFromSeed("Alice")
	bob := account.MustFromSeed("Bob")
	supply := big.NewInt(1_000)

	cases := []struct {
		name   string
		allocs []Allocation
		want   error
	}{
		{"short", []Allocation{{alice, big.NewInt(999)}}, ErrSupplyMismatch},
		{"over", []Allocation{{alice, big.NewInt(600)}, {bob, big.NewInt(401)}}, ErrSupplyMismatch},
		{"duplicate", []Allocation{{alice, big.NewInt(500)}, {alice, big.NewInt(500)}}, ErrDuplicateAccount},
		{"zero", []Allocation{{alice, big.NewInt(1_000)}, {bob, big.NewInt(0)}}, ErrInvalidAmount},
		{"negative", []Allocation{{alice, big.NewInt(1_001)}, {bob, big.NewInt(-1)}}, ErrInvalidAmount},
		{"nil", []Allocation{{alice, nil}}, ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildFromDescriptor(Descriptor{
				Code:        testCode,
				Supply:      supply,
				Authority:   alice,
				Allocations: tc.allocs,
			})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBuildDoesNotAliasInputs(t *testing.T) {
	code := append([]byte(nil), testCode...)
	supply := shindeSupply()

	st, err := Build(code, supply, sudoID(t))
	require.NoError(t, err)

	code[0] = 0xff
	supply.SetInt64(1)
	assert.Equal(t, byte(0x00), st.Code[0])
	assert.Equal(t, 0, st.TotalIssuance().Cmp(shindeSupply()))
}

func TestRootDeterministic(t *testing.T) {
	a, err := Build(testCode, shindeSupply(), sudoID(t))
	require.NoError(t, err)
	b, err := Build(testCode, shindeSupply(), sudoID(t))
	require.NoError(t, err)

	encA, err := a.Encode()
	require.NoError(t, err)
	encB, err := b.Encode()
	require.NoError(t, err)
	assert.Equal(t, encA, encB)

	rootA, err := a.Root()
	require.NoError(t, err)
	rootB, err := b.Root()
	require.NoError(t, err)
	assert.Equal(t, rootA, rootB)

	blockA, err := a.Block()
	require.NoError(t, err)
	blockB, err := b.Block()
	require.NoError(t, err)
	assert.Equal(t, blockA.Hash(), blockB.Hash())
	assert.Equal(t, rootA, blockA.Header.StateRoot)
}

func TestRootChangesWithContent(t *testing.T) {
	base, err := Build(testCode, shindeSupply(), sudoID(t))
	require.NoError(t, err)
	baseRoot, err := base.Root()
	require.NoError(t, err)

	otherCode, err := Build([]byte{0x01}, shindeSupply(), sudoID(t))
	require.NoError(t, err)
	otherSudo, err := Build(testCode, shindeSupply(), account.MustFromSeed("Alice"))
	require.NoError(t, err)
	otherSupply, err := Build(testCode, big.NewInt(1), sudoID(t))
	require.NoError(t, err)

	for _, st := range []*State{otherCode, otherSudo, otherSupply} {
		root, err := st.Root()
		require.NoError(t, err)
		assert.NotEqual(t, baseRoot, root)
	}
}

func TestDescriptorJSONRoundTrip(t *testing.T) {
	d := Descriptor{Code: testCode, Supply: shindeSupply(), Authority: sudoID(t)}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"balances":[["`+sudoAddress+`",589552695333683000000000000]]`)
	assert.Contains(t, string(data), `"key":"`+sudoAddress+`"`)
	assert.Contains(t, string(data), `"code":"0x0061736d01000000"`)

	var decoded Descriptor
	require.NoError(t, json.Unmarshal(data, &decoded))

	want, err := BuildFromDescriptor(d)
	require.NoError(t, err)
	got, err := BuildFromDescriptor(decoded)
	require.NoError(t, err)

	wantRoot, _ := want.Root()
	gotRoot, _ := got.Root()
	assert.Equal(t, wantRoot, gotRoot)
}

func TestAllocationJSONErrors(t *testing.T) {
	var a Allocation
	assert.Error(t, json.Unmarshal([]byte(`["`+sudoAddress+`"]`), &a))
	assert.Error(t, json.Unmarshal([]byte(`["bogus", 1]`), &a))
	assert.Error(t, json.Unmarshal([]byte(`{"account":"x"}`), &a))
}

func TestBuildMissingAuthority(t *testing.T) {
	_, err := Build(testCode, shindeSupply(), account.ID{})
	assert.ErrorIs(t, err, ErrMissingAuthority)

	_, err = BuildFromDescriptor(Descriptor{
		Code:        testCode,
		Supply:      big.NewInt(10),
		Allocations: []Allocation{{Account: account.MustFromSeed("Bob"), Amount: big.NewInt(10)}},
	})
	assert.ErrorIs(t, err, ErrMissingAuthority)
}

func TestDescriptorJSONRequiresSudoKey(t *testing.T) {
	balances := `"balances":{"balances":[["` + sudoAddress + `",10]],"totalIssuance":10}`

	var d Descriptor
	err := json.Unmarshal([]byte(`{"code":"0x00","config":{`+balances+`}}`), &d)
	assert.ErrorIs(t, err, ErrMissingAuthority)

	err = json.Unmarshal([]byte(`{"code":"0x00","config":{`+balances+`,"sudo":{}}}`), &d)
	assert.ErrorIs(t, err, ErrMissingAuthority)

	err = json.Unmarshal([]byte(`{"code":"0x","config":{`+balances+`,"sudo":{"key":"`+sudoAddress+`"}}}`), &d)
	assert.ErrorIs(t, err, ErrMissingRuntimeCode)

	require.NoError(t, json.Unmarshal([]byte(`{"code":"0x00","config":{`+balances+`,"sudo":{"key":"`+sudoAddress+`"}}}`), &d))
	assert.Equal(t, sudoID(t), d.Authority)
}
