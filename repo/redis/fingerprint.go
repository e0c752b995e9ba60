package redis

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// BuildCacheKey 把一组查询参数指纹化为稳定的缓存 Key，格式为 "<prefix>:<md5十六进制>"。
// - 参数集合相同（与键的插入顺序无关）时必须产生相同的 Key，
//   任何参数差异都应产生不同的 Key。
// - encoding/json 对 map 的序列化按键名排序，天然就是规范化形式。
// - 纯函数，无错误分支: 参数值都来自查询字符串绑定后的基础类型，
//   序列化失败在这里属于不可达路径，兜底直接用原始拼接。
func BuildCacheKey(prefix string, params map[string]any) string {
	data, err := json.Marshal(params)
	if err != nil {
		data = []byte(fmt.Sprintf("%v", params))
	}
	sum := md5.Sum(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}
