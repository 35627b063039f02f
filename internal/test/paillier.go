package test

import (
	"sync"

	"github.com/cronokirby/saferith"
	"github.com/quorumsig/gg20/pkg/paillier"
)

// Safe Blum primes, precomputed so that tests do not pay for prime generation.
// Each pair yields one Paillier key passing paillier.ValidatePrime.
var primeHex = [...][2]string{
	{
		"E39D1E2D24341FF8E4BD9A23DB51CD3C2E70B23B150CCD62A01BE5E3D75FCC8CAEAEB1D95D193A9E54720F29C7DEDEE499025A3C425CE0A363A32B5007A2AA38D1A0EA1F0284B99976C6953A6FEF375B9C6F3EB97EB8BB12EF94C28243CCC8E0744657E79F8540FF39B1DDC250C6927FC2DF11A98D04C4376E33D2E37A1B2CFB",
		"F767FE6C3347971A477A2497E5E8EF1CD331680DB2CF50C8456E04F88BFD78772F8F3C10F887FD001DA165589264C4CE139853C37406D3CC21F19072D31B82FBEA785C9FE47F02ADDD8B4E22C6AE0004F854416B78A559331FD2344B4E5F6BBCB3D9896CA77F38989280F0CC967CDE65E724562758C96014D2F10FA719ABD39B",
	},
	{
		"C40AB1CAD0C0E1EE3452CDB00E3CC19BE58C6711009191B79D56D2E2EA9C1FACF998D02A6F122384F00ACCA00A2BBCD17A09F33C367B56FECA64C77642DBDC86F282B9B5B0B77B13D92511FCC7F743B380D87A7D5FDCA644BE7892A97CA28AC0296515B905570C578D2A4CDCA0B0D95ECEEA8BBEE320DF4A1DB184C72702F967",
		"C9A903CEE761BDDC1D4D273114320AE693F9AD4956FED39419FEEBD8B5E186D3566CCF8EA42315EA9E512FBB55939BA450242D8C8DBEE9F6BBFD29323FE9E66CD4F9BE293A056F38F6735974EBB7085D4D5324F1F14094A11E87EE748839E1DD28A05D32628ED98329233C3210849205BBBB91567E2C4507DB37BDCF214D6267",
	},
	{
		"D58EEF1F92A1EAD3C03A80787DF1D25077423E08ECD302904BD37360410525914563E13A43D8F06BFE3D1A2C438C2DAD7230776D37662B8E8FDEB12FE2D11AC4C166B8320BB09FD1A6B5EC5E9F8EFE3BA5172405B4F443682F3599338E0D10953A8E43EFC54B47277459763CEAAB3C05BF921B965352E1864F9F8ADCE1D905D7",
		"C5F2B4F39858AE2A09E1417B2FE40C4D1417B554EA86DE22DAC1C496A578B01AE04A519A6FDA975DDB55E30EB8B9694B3839850FDAB05708DE7641C1886B71F4C581C294D465215880E0F91BDA4C5095169F60E4B9CB54C611A52BE0C94FB11136FD916B0B416FE17ED3BD7E27EAFE1430C82FA505A16C4E5F55DD9A6087D8AB",
	},
	{
		"F2B98FDA9236403F6B5EB752775C622FEE92C05E6F13D6EB7BFF9E1297C7C2968D31335F76359A2F361FC1441570F39E59650A6F00624CFF5815505EB82CF0C3DAC7DD31EA496A61605AA1CB08FB210A3D9915454FC05283E5332A9FB838B1D2E8DBB131A536556B406255291BE8F03CBB84FDCFB1E06DD9C52C36903793F647",
		"F7C0B87C192585F2BF515F7A5B57E12499AC9D13360FA20E01DF42D2E3267A2C319AB595303F99B56C0BF817529785A7F50070AC486688718A0B31A9C80A9050A559493D7E2D09DCBFCE5D07BDDDBC01223A9B54733B8AD2D7112472DD9182E2019D4C908E0D0F7728F69907EBDA8CDCB8DF76F3439680853FFF4A0680B3619B",
	},
	{
		"E3338027D3FBD544556C8814A4749FD66CFD48182F226C454691B34C5DF5278EBAA4B9F1D0AB8B5971BAC8C2C502C7D2578D7DBAFDAF8047E4BD6C3D0F54B3F56270AEB365543ED5293658389354DD85A1CB9D39BB03E84E2248BAA2C27AA7E83447D0BEB146E90D87F83137D71CA4F376A349E4A16E70E7E3A9AEA72DCDA3C3",
		"D765F8ABC1517F2A2A96B7C0E6ABA84D61AF30E3B3FF4ECBF4924D47F38BEBBEB64918F255565E78D40BEAC36DCB729D851D2EBD83CDF91C7ABB1FEF30D6494CBF80431161A4FFD71834D0E4DFF3D769359BC9B3C313832028C48F52022AC0A8E90A1A8A1FC1CD886EC9A0470169DAA9E55C5864E8BD7F46F6D38F91BD84FA97",
	},
	{
		"D8017A0E42D405033769605F90B61058C73354F2A6CBDE3CB0F7AEF07782AF89DDD84531AD66AE27300102F7DA62E9DB0423946EFD9E9C790E1E3EDFC7BA79C469A5303C2D222C77D317CA1489AF88F4D0A60B58464812DC4560B6B31D89B914DC62B2964A720CD5B8426A8188779003F1EDE6A2996A78409162AEF44A88414F",
		"F40C000F65B143C2E64F24160E370C8381F6DA728FD04F4615B3C8B98D9F09ADC2B756C06CD8E368B7149DD62380696F970077AB28723CEA0AB6022580B59B9B746B3FB1C67F394AE23C10965A800D0257D71F9E2C5058BA45F945EFEAF66EC5E442771BCCFF3F526BB656060920F40DDB3F67F2D7C825CA90381C6EEFD87743",
	},
}

var (
	initKeys     sync.Once
	paillierKeys []*paillier.SecretKey
)

func buildKeys() {
	paillierKeys = make([]*paillier.SecretKey, len(primeHex))
	for i, pair := range primeHex {
		p, err := new(saferith.Nat).SetHex(pair[0])
		if err != nil {
			panic(err)
		}
		q, err := new(saferith.Nat).SetHex(pair[1])
		if err != nil {
			panic(err)
		}
		paillierKeys[i] = paillier.NewSecretKeyFromPrimes(p, q)
	}
}

// PaillierKeys returns n distinct precomputed Paillier secret keys.
func PaillierKeys(n int) []*paillier.SecretKey {
	initKeys.Do(buildKeys)
	if n > len(paillierKeys) {
		panic("test: not enough precomputed Paillier keys")
	}
	return paillierKeys[:n]
}

// PaillierKey returns the i-th precomputed Paillier secret key.
func PaillierKey(i int) *paillier.SecretKey {
	initKeys.Do(buildKeys)
	return paillierKeys[i]
}
