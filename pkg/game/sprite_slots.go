package game

// 精灵槽位 ID，与 data/resources.yaml 对应
const (
	SlotSanta    = "santa"
	SlotCloud    = "cloud"
	SlotObstacle = "obstacle"
	SlotTree     = "tree"
	SlotSnowman  = "snowman"
	SlotTreeGun  = "treegun"
	SlotBullet   = "bullet"
	SlotKrampus  = "krampus"
	SlotHP       = "hp"
	SlotReward   = "500"
)

// GoodGiftSlots 普通礼物的变体槽位（按序号）
var GoodGiftSlots = []string{"present0", "present1", "present2"}

// MimicSlots 伪装礼物的变体槽位
var MimicSlots = []string{"mimic1", "mimic2"}

// TileSlots 背景地砖槽位
var TileSlots = []string{"tile0", "tile1", "tile2", "tile3", "tile4", "tile5"}

// SpritePools 已加载的礼物变体
// 模拟层只使用数量，渲染层按索引取图
type SpritePools struct {
	Good []string
	Bad  []string
}

// BuildSpritePools 从资源表中收集可用的礼物变体
func (rm *ResourceManager) BuildSpritePools() SpritePools {
	return SpritePools{
		Good: rm.LoadedVariants(GoodGiftSlots...),
		Bad:  rm.LoadedVariants(MimicSlots...),
	}
}
