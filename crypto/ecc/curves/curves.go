package curves

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/vocdoni/ec-elgamal/crypto/ecc"
)

const (
	CurveTypeSecp256k1 = "secp256k1" // Default curve type
	CurveTypeM383      = "m383"
	CurveTypeSecp521r1 = "secp521r1"
	CurveTypeBN254     = "bn254"
	CurveTypeP256      = "p256"

	DefaultCurveType = CurveTypeSecp256k1
)

// ErrUnsupportedCurve is returned by New for unknown curve names.
var ErrUnsupportedCurve = errors.New("unsupported curve type")

// decimal parameter sets: p, n, a, b, gx, gy
var registry = map[string][6]string{
	CurveTypeSecp256k1: {
		"115792089237316195423570985008687907853269984665640564039457584007908834671663",
		"115792089237316195423570985008687907852837564279074904382605163141518161494337",
		"0",
		"7",
		"55066263022277343669578718895168534326250603453777594175500187360389116729240",
		"32670510020758816978083085130507043184471273380659243275938904335757337482424",
	},
	CurveTypeM383: {
		"19701003098197239606139520050071806902539869635232723333974146702122860885748605305707133127442457820403313995153221",
		"2462625387274654950767440006258975862817483704404090416746934574041288984234680883008327183083615266784870011007447",
		"6567001032732413202046506683357268967513289878410907777991382234040953628582868435235711042480819273466349716876908",
		"729666781414712578005167409261918774168143319823434197554598026004550403175874270581745671386758349462616491048773",
		"13134002065464826404093013366714537935026579756821815555982764468081907257165736870471422084961638546935542664123876",
		"4737623401891753997660546300375902576839617167257703725630389791524463565757299203154901655432096558642117242906494",
	},
	CurveTypeSecp521r1: {
		"6864797660130609714981900799081393217269435300143305409394463459185543183397656052122559640661454554977296311391480858037121987999716643812574028291115057151",
		"6864797660130609714981900799081393217269435300143305409394463459185543183397655394245057746333217197532963996371363321113864768612440380340372808892707005449",
		"6864797660130609714981900799081393217269435300143305409394463459185543183397656052122559640661454554977296311391480858037121987999716643812574028291115057148",
		"1093849038073734274511112390766805569936207598951683748994586394495953116150735016013708737573759623248592132296706313309438452531591012912142327488478985984",
		"2661740802050217063228768716723360960729859168756973147706671368418802944996427808491545080627771902352094241225065558662157113545570916814161637315895999846",
		"3757180025770020463545507224491183603594455134769762486694567779615544477440556316691234405012945539562144444537289428522585666729196580810124344277578376784",
	},
	CurveTypeBN254: {
		"21888242871839275222246405745257275088696311157297823662689037894645226208583",
		"21888242871839275222246405745257275088548364400416034343698204186575808495617",
		"0",
		"3",
		"1",
		"2",
	},
	CurveTypeP256: {
		"115792089210356248762697446949407573530086143415290314195533631308867097853951",
		"115792089210356248762697446949407573529996955224135760342422259061068512044369",
		"115792089210356248762697446949407573530086143415290314195533631308867097853948",
		"41058363725152142129326129780047268409114441015993725554835256314039467401291",
		"48439561293906451759052585252797914202762949526041747995844080717082404635286",
		"36134250956749795798585127919587881956611106672985015071877198253568414405109",
	},
}

// New returns the parameters of the named curve. Each call returns a fresh
// copy, so callers may not affect each other.
func New(curveType string) (*ecc.CurveParams, error) {
	params, ok := registry[curveType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurve, curveType)
	}
	v := make([]*big.Int, len(params))
	for i, s := range params {
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			panic(fmt.Sprintf("bad constant for curve %s: %q", curveType, s))
		}
		v[i] = n
	}
	return &ecc.CurveParams{
		Name:    curveType,
		P:       v[0],
		N:       v[1],
		A:       v[2],
		B:       v[3],
		G:       ecc.NewPoint(v[4], v[5]),
		BitSize: v[0].BitLen(),
	}, nil
}

// MustNew is like New but panics on unknown curve names.
func MustNew(curveType string) *ecc.CurveParams {
	c, err := New(curveType)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// Supported returns the registered curve names in lexical order.
func Supported() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupported reports whether curveType names a registered curve.
func IsSupported(curveType string) bool {
	_, ok := registry[curveType]
	return ok
}
