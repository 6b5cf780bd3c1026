package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"
)

const baseURL = "http://localhost:8080"

// 完整 API 冒烟测试：注册 -> 登录 -> 浏览目录 -> 购物车 -> 结账 -> 确认页。
// 需要先启动 cmd/authmock 和 cmd/web
func main() {
	fmt.Println("==========================================")
	fmt.Println("    完整API测试")
	fmt.Println("==========================================")
	fmt.Println()

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar, Timeout: 10 * time.Second}

	// 1. 注册（演示 API 只接受预置用户）
	fmt.Println("1. 注册...")
	registerResp, err := httpPost(client, baseURL+"/api/register", map[string]string{
		"email":    "eve.holt@reqres.in",
		"password": "pistol",
	})
	if err != nil {
		fmt.Printf("   注册失败: %v\n", err)
	} else {
		fmt.Printf("   注册成功: %v\n", registerResp)
	}

	// 2. 登录
	fmt.Println("\n2. 登录...")
	loginResp, err := httpPost(client, baseURL+"/api/login", map[string]string{
		"email":    "eve.holt@reqres.in",
		"password": "cityslicka",
	})
	if err != nil {
		fmt.Printf("   登录失败: %v\n", err)
		return
	}
	fmt.Printf("   登录成功: %v\n", loginResp)

	// 3. 商品列表 + 搜索
	fmt.Println("\n3. 商品列表...")
	productsResp, err := httpGet(client, baseURL+"/api/products?category=men&sort=price-asc")
	if err != nil {
		fmt.Printf("   失败: %v\n", err)
	} else {
		fmt.Printf("   成功: code=%v\n", productsResp["code"])
	}

	fmt.Println("\n4. 搜索建议...")
	suggestResp, err := httpGet(client, baseURL+"/api/search/suggest?q=shirt")
	if err != nil {
		fmt.Printf("   失败: %v\n", err)
	} else {
		fmt.Printf("   成功: %v\n", suggestResp["data"])
	}

	// 5. 加购 + 改数量
	fmt.Println("\n5. 加购...")
	if _, err := httpPost(client, baseURL+"/api/cart", map[string]interface{}{"id": 1, "qty": 2}); err != nil {
		fmt.Printf("   失败: %v\n", err)
	}
	cartResp, err := httpGet(client, baseURL+"/api/cart")
	if err != nil {
		fmt.Printf("   查询购物车失败: %v\n", err)
	} else {
		fmt.Printf("   购物车: %v\n", cartResp["data"])
	}

	// 6. 心愿单幂等
	fmt.Println("\n6. 心愿单...")
	_, _ = httpPost(client, baseURL+"/api/wishlist", map[string]string{"id": "7"})
	wishResp, err := httpPost(client, baseURL+"/api/wishlist", map[string]string{"id": "7"})
	if err != nil {
		fmt.Printf("   失败: %v\n", err)
	} else {
		fmt.Printf("   第二次加入: %v\n", wishResp["msg"])
	}

	// 7. 结账
	fmt.Println("\n7. 结账...")
	checkoutResp, err := httpPost(client, baseURL+"/api/checkout", map[string]string{
		"name":    "Smoke Tester",
		"email":   "eve.holt@reqres.in",
		"phone":   "(555) 123-4567",
		"address": "1 Test Street",
		"city":    "Testville",
		"postal":  "12345",
	})
	if err != nil {
		fmt.Printf("   失败: %v\n", err)
	} else {
		fmt.Printf("   下单成功: %v\n", checkoutResp["data"])
	}

	// 8. 确认页（重复读取应看到同一单）
	fmt.Println("\n8. 确认页...")
	for i := 0; i < 2; i++ {
		orderResp, err := httpGet(client, baseURL+"/api/order/last")
		if err != nil {
			fmt.Printf("   失败: %v\n", err)
		} else {
			fmt.Printf("   第%d次读取: %v\n", i+1, orderResp["data"])
		}
	}

	fmt.Println("\n==========================================")
	fmt.Println("测试完成！")
	fmt.Println("==========================================")
}

func httpPost(client *http.Client, url string, payload interface{}) (map[string]interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeResponse(resp)
}

func httpGet(client *http.Client, url string) (map[string]interface{}, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeResponse(resp)
}

func decodeResponse(resp *http.Response) (map[string]interface{}, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}
	if resp.StatusCode >= 400 {
		return out, fmt.Errorf("status %d: %v", resp.StatusCode, out["msg"])
	}
	return out, nil
}
