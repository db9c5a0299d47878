// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

const (
	Tool       = "albalias"
	BannerBlue = `
       _ _           _ _           
  __ _| | |__   __ _| (_) __ _ ___ 
 / _' | | '_ \ / _' | | |/ _' / __|
| (_| | | |_) | (_| | | | (_| \__ \
 \__,_|_|_.__/ \__,_|_|_|\__,_|___/
`
	BannerGold = `
  
   stage 
     |   
     v   
   alias  vversion
`
)
