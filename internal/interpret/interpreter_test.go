package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/address-similarity/app/models"
)

func testGazetteer() *Gazetteer {
	xihu := &models.RegionEntity{ID: 330106, Name: "西湖区", Type: models.RegionCounty}
	yuhang := &models.RegionEntity{ID: 330110, Name: "余杭区", Type: models.RegionCounty}
	hangzhou := &models.RegionEntity{
		ID: 330100, Name: "杭州市", Alias: []string{"杭州"}, Type: models.RegionCity,
		Children: []*models.RegionEntity{xihu, yuhang},
	}
	yiwu := &models.RegionEntity{
		ID: 330782, Name: "义乌市", Alias: []string{"义乌"}, Type: models.RegionCityLevelCounty,
	}
	zhejiang := &models.RegionEntity{
		ID: 330000, Name: "浙江省", Alias: []string{"浙江"}, Type: models.RegionProvince,
		Children: []*models.RegionEntity{hangzhou, yiwu},
	}
	return NewGazetteer([]*models.RegionEntity{zhejiang})
}

func newTestInterpreter() *AddressInterpreter {
	return NewAddressInterpreter(testGazetteer(), zap.NewNop())
}

func TestInterpretFullAddress(t *testing.T) {
	ai := newTestInterpreter()

	addr, err := ai.Interpret("浙江省杭州市西湖区三墩镇金渡北路12号金城小区")
	require.NoError(t, err)

	require.True(t, addr.HasProvince())
	require.True(t, addr.HasCity())
	require.True(t, addr.HasCounty())
	assert.Equal(t, int64(330000), addr.Province.ID)
	assert.Equal(t, int64(330100), addr.City.ID)
	assert.Equal(t, int64(330106), addr.County.ID)

	assert.Equal(t, []string{"三墩镇"}, addr.Towns)
	assert.Equal(t, "金渡北路", addr.Road)
	assert.Equal(t, "12号", addr.RoadNum)
	assert.Equal(t, "金城小区", addr.Text)
}

func TestInterpretShortAliases(t *testing.T) {
	ai := newTestInterpreter()

	addr, err := ai.Interpret("浙江杭州余杭区")
	require.NoError(t, err)
	require.True(t, addr.HasCounty())
	assert.Equal(t, int64(330110), addr.County.ID)
	assert.Empty(t, addr.Text)
}

func TestInterpretFuzzyRegionMatch(t *testing.T) {
	ai := newTestInterpreter()

	// One swapped character in the city name still resolves.
	addr, err := ai.Interpret("浙江省抗州市西湖区人民路40号")
	require.NoError(t, err)
	require.True(t, addr.HasCity())
	assert.Equal(t, int64(330100), addr.City.ID)
	assert.Equal(t, "人民路", addr.Road)
	assert.Equal(t, "40号", addr.RoadNum)
}

func TestInterpretCityLevelCounty(t *testing.T) {
	ai := newTestInterpreter()

	addr, err := ai.Interpret("浙江省义乌市江东街道")
	require.NoError(t, err)
	require.True(t, addr.HasCity())
	require.True(t, addr.HasCounty())
	// The city-level county fills both levels.
	assert.Equal(t, addr.City, addr.County)
	assert.Equal(t, models.RegionCityLevelCounty, addr.County.Type)
	assert.Equal(t, []string{"江东街道"}, addr.Towns)
}

func TestInterpretVillageAndRoadExcision(t *testing.T) {
	ai := newTestInterpreter()

	addr, err := ai.Interpret("浙江省杭州市西湖区大王镇李村人民路40号7栋")
	require.NoError(t, err)
	assert.Equal(t, []string{"大王镇"}, addr.Towns)
	assert.Equal(t, "李村", addr.Village)
	assert.Equal(t, "人民路", addr.Road)
	assert.Equal(t, "40号", addr.RoadNum)
	assert.Equal(t, "7栋", addr.Text)
}

func TestInterpretUnresolvedRegions(t *testing.T) {
	ai := newTestInterpreter()

	addr, err := ai.Interpret("某某省某某市某某区人民路")
	require.NoError(t, err)
	assert.False(t, addr.HasProvince())
	assert.False(t, addr.HasCity())
	assert.Equal(t, "人民路", addr.Road)
}
